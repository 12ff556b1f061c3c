package config

const (
	defaultLogFile           = "e-library.log"
	defaultLogLevel          = "info"
	defaultLogFileMaxSize    = 20
	defaultLogFileMaxBackups = 3
	defaultLogFileMaxAge     = 28
	defaultLogCompress       = false
	defaultPort              = 8080
	defaultHost              = "127.0.0.1"
	defaultData              = "/var/opt/e-library"
	defaultDBName            = "ebooks.db"
	defaultShutdownTimeout   = 5
	defaultSessionIdle       = 24 * 60
)

// EnvPrefix is the prefix of the environment variables read by LoadConfig,
// e.g. ELIBRARY_PORT.
const EnvPrefix = "ELIBRARY"

// Why use mapstructure instead of json, if use json as field tags, it can't recgnize the field, since the viper use mapstructure.
// see: https://pkg.go.dev/github.com/mitchellh/mapstructure#hdr-Field_Tags
type Options struct {
	// LogFile is the file to write logs to, relative paths are resolved under Data
	LogFile string `mapstructure:"log_file"`
	// LogLevel is the level of logging to show
	LogLevel string `mapstructure:"log_level"`
	// LogFilemaxSize is the maximum size of the log file before it is rotated, in MiB
	LogFileMaxSize int `mapstructure:"log_file_max_size"`
	// LogFileMaxBackups is the maximum number of log files to keep
	LogFileMaxBackups int `mapstructure:"log_file_max_backups"`
	// LogFileMaxAge is the maximum number of days to keep a log file
	LogFileMaxAge int `mapstructure:"log_file_max_age"`
	// LogCompress is whether or not to compress the log files
	LogCompress bool `mapstructure:"log_compress"`
	// DSN is the path of the sqlite database. Empty means <data>/ebooks.db.
	DSN string `mapstructure:"dsn_uri"`
	// port is the port to listen on
	Port int `mapstructure:"port"`
	// host is the host to listen on
	Host string `mapstructure:"host"`
	// data is the directory to store data
	Data string `mapstructure:"data"`
	// ShutdownTimeout is how long the server waits for in-flight requests, in seconds
	ShutdownTimeout int `mapstructure:"shutdown_timeout"`
	// SessionIdleTimeout is how long a browser session lives without a request, in minutes
	SessionIdleTimeout int `mapstructure:"session_idle_timeout"`
}

func GetDefaultOptions() *Options {
	return &Options{
		LogFile:            defaultLogFile,
		LogLevel:           defaultLogLevel,
		LogFileMaxSize:     defaultLogFileMaxSize,
		LogFileMaxBackups:  defaultLogFileMaxBackups,
		LogFileMaxAge:      defaultLogFileMaxAge,
		LogCompress:        defaultLogCompress,
		Port:               defaultPort,
		Host:               defaultHost,
		Data:               defaultData,
		ShutdownTimeout:    defaultShutdownTimeout,
		SessionIdleTimeout: defaultSessionIdle,
	}
}
