package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// LoadConfig merges, from lowest to highest precedence, the defaults, the
// optional config file, ELIBRARY_* environment variables and whatever flags
// were bound to v by the caller.
func LoadConfig(v *viper.Viper, file string) (*Options, error) {
	if v == nil {
		v = viper.New()
	}
	defaults := GetDefaultOptions()
	setDefaults(v, defaults)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if file != "" {
		if _, err := os.Stat(file); err != nil {
			return nil, errors.Wrapf(err, "unable to access config file %s", file)
		}
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "unable to read config file %s", file)
		}
	}

	opts := &Options{}
	if err := v.Unmarshal(opts); err != nil {
		return nil, errors.Wrap(err, "unable to decode config")
	}
	if err := opts.resolvePaths(); err != nil {
		return nil, err
	}

	return opts, nil
}

// ParseFile loads a config file on top of the defaults.
func ParseFile(file string) (*Options, error) {
	return LoadConfig(viper.New(), file)
}

// Addr returns the host:port the HTTP server listens on.
func (o *Options) Addr() string {
	return fmt.Sprintf("%s:%d", o.Host, o.Port)
}

func (o *Options) resolvePaths() error {
	dataDir, err := checkDataDir(o.Data)
	if err != nil {
		return err
	}
	o.Data = dataDir
	if o.DSN == "" {
		o.DSN = filepath.Join(o.Data, defaultDBName)
	}
	// A relative log file lives next to the database.
	if o.LogFile != "" && !filepath.IsAbs(o.LogFile) {
		o.LogFile = filepath.Join(o.Data, o.LogFile)
	}
	return nil
}

func setDefaults(v *viper.Viper, o *Options) {
	v.SetDefault("log_file", o.LogFile)
	v.SetDefault("log_level", o.LogLevel)
	v.SetDefault("log_file_max_size", o.LogFileMaxSize)
	v.SetDefault("log_file_max_backups", o.LogFileMaxBackups)
	v.SetDefault("log_file_max_age", o.LogFileMaxAge)
	v.SetDefault("log_compress", o.LogCompress)
	v.SetDefault("dsn_uri", o.DSN)
	v.SetDefault("port", o.Port)
	v.SetDefault("host", o.Host)
	v.SetDefault("data", o.Data)
	v.SetDefault("shutdown_timeout", o.ShutdownTimeout)
	v.SetDefault("session_idle_timeout", o.SessionIdleTimeout)
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		absDir, err := filepath.Abs(dataDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err == nil {
		return dataDir, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}

	err := os.MkdirAll(dataDir, 0755)
	if err == nil {
		return dataDir, nil
	}
	if !errors.Is(err, os.ErrPermission) || dataDir != defaultData {
		return "", errors.Wrapf(err, "unable to create data folder %s", dataDir)
	}

	// Permission denied on the default folder, fall back to the user's home directory.
	currentUser, err := user.Current()
	if err != nil {
		return "", errors.Wrap(err, "unable to get current user")
	}
	if currentUser.HomeDir == "" {
		return "", errors.New("unable to get home directory")
	}
	homeData := filepath.Join(currentUser.HomeDir, ".e-library")
	if err := os.MkdirAll(homeData, 0755); err != nil {
		return "", errors.Wrapf(err, "unable to create data folder %s", homeData)
	}
	return homeData, nil
}
