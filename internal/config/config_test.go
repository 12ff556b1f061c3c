package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestLoadDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ELIBRARY_DATA", dir)

	opts, err := LoadConfig(viper.New(), "")
	if err != nil {
		t.Fatalf("Error loading config: %s", err)
	}

	t.Logf(`Config
		Host: %s
		Port: %d
		DSN: %s
		LogLevel: %s
		Data: %s
		`, opts.Host, opts.Port, opts.DSN, opts.LogLevel, opts.Data)

	if opts.Port != defaultPort {
		t.Errorf("port incorrect, got %d", opts.Port)
	}
	if opts.Data != dir {
		t.Errorf("data incorrect, got %s", opts.Data)
	}
	if opts.DSN != filepath.Join(dir, defaultDBName) {
		t.Errorf("dsn not derived from data, got %s", opts.DSN)
	}
	if opts.LogFile != filepath.Join(dir, defaultLogFile) {
		t.Errorf("log_file not resolved under data, got %s", opts.LogFile)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config_test.toml")
	content := `
host = "0.0.0.0"
port = 2333
log_file = "test.log"
log_level = "debug"
data = "` + filepath.ToSlash(dir) + `"
dsn_uri = "` + filepath.ToSlash(filepath.Join(dir, "custom.db")) + `"
`
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	opts, err := ParseFile(file)
	if err != nil {
		t.Fatalf("Error loading config: %s", err)
	}
	if opts.Host != "0.0.0.0" {
		t.Errorf("host incorrect")
	}
	if opts.LogFile != filepath.Join(dir, "test.log") {
		t.Errorf("log_file incorrect, got %s", opts.LogFile)
	}
	if opts.Port != 2333 {
		t.Errorf("port incorrect")
	}
	if opts.LogLevel != "debug" {
		t.Errorf("log_level incorrect")
	}
	if filepath.Base(opts.DSN) != "custom.db" {
		t.Errorf("dsn_uri incorrect, got %s", opts.DSN)
	}
	if opts.Addr() != "0.0.0.0:2333" {
		t.Errorf("addr incorrect, got %s", opts.Addr())
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	content := "port: 2333\ndata: " + filepath.ToSlash(dir) + "\n"
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ELIBRARY_PORT", "9090")

	opts, err := LoadConfig(viper.New(), file)
	if err != nil {
		t.Fatalf("Error loading config: %s", err)
	}
	if opts.Port != 9090 {
		t.Errorf("env should override file, got port %d", opts.Port)
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Errorf("expected error for missing config file")
	}
}

func TestCheckDataDirCreatesFolder(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data") + "/"
	got, err := checkDataDir(dir)
	if err != nil {
		t.Fatalf("Error checking data dir: %s", err)
	}
	if got != filepath.Clean(dir) {
		t.Errorf("expected trailing slash trimmed, got %s", got)
	}
	if info, err := os.Stat(got); err != nil || !info.IsDir() {
		t.Errorf("data folder not created: %v", err)
	}
}

func TestAbsoluteLogFileIsKept(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(t.TempDir(), "elsewhere.log")
	t.Setenv("ELIBRARY_DATA", dir)
	t.Setenv("ELIBRARY_LOG_FILE", logFile)

	opts, err := LoadConfig(viper.New(), "")
	if err != nil {
		t.Fatalf("Error loading config: %s", err)
	}
	if opts.LogFile != logFile {
		t.Errorf("absolute log_file should be kept, got %s", opts.LogFile)
	}
}
