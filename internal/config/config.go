// Package config contains everything related to configuration
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/mitchellh/go-homedir"
)

// ConfigPathEnvVar points at an explicit YAML config file.
const ConfigPathEnvVar = "MOVIEREC_CONFIG"

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the application configuration.
type Config struct {
	// Root is the project checkout holding data/, as MOVIE_REC_PATH did.
	Root           string        `koanf:"root"`
	ArtifactsDir   string        `koanf:"artifacts_dir"`
	DataFramesDir  string        `koanf:"dataframes_dir"`
	MovieLensDir   string        `koanf:"movielens_dir"`
	CacheDBPath    string        `koanf:"cache_db_path"`
	LogFile        string        `koanf:"log_file"`
	LogLevel       string        `koanf:"log_level"`
	Cutoffs        []int         `koanf:"cutoffs"`
	WatchArtifacts bool          `koanf:"watch_artifacts"`
	ReloadDebounce time.Duration `koanf:"reload_debounce"`
	DesktopNotify  bool          `koanf:"desktop_notify"`
	Mail           MailConfig    `koanf:"mail"`

	// ConfigFile is the YAML file that was loaded, if any.
	ConfigFile string `koanf:"-"`
}

// MailConfig configures the SMTP status notifier.
type MailConfig struct {
	Server     string   `koanf:"server"`
	Port       int      `koanf:"port"`
	Sender     string   `koanf:"sender"`
	User       string   `koanf:"user"`
	Password   string   `koanf:"password"`
	Recipients []string `koanf:"recipients"`
}

// Enabled reports whether enough is set to send mail.
func (m MailConfig) Enabled() bool {
	return m.Server != "" && m.Sender != ""
}

// Default values
const (
	defaultReloadDebounce = 500 * time.Millisecond
	defaultMailServer     = "posteo.de"
	defaultMailPort       = 465
)

func defaultConfig() *Config {
	return &Config{
		Root:           ".",
		CacheDBPath:    getDefaultCachePath(),
		LogFile:        getDefaultLogPath(),
		LogLevel:       "info",
		Cutoffs:        []int{3, 5, 10, 20},
		WatchArtifacts: true,
		ReloadDebounce: defaultReloadDebounce,
		Mail: MailConfig{
			Server: defaultMailServer,
			Port:   defaultMailPort,
		},
	}
}

// envMappings maps environment variables to config paths. The unprefixed
// names are the ones the notebooks and the original app read.
var envMappings = map[string]string{
	"movie_rec_path": "root",
	"mailsender":     "mail.sender",
	"mailuser":       "mail.user",
	"mailpw":         "mail.password",

	"movierec_root":            "root",
	"movierec_artifacts_dir":   "artifacts_dir",
	"movierec_dataframes_dir":  "dataframes_dir",
	"movierec_movielens_dir":   "movielens_dir",
	"movierec_cache_db_path":   "cache_db_path",
	"movierec_log_file":        "log_file",
	"movierec_log_level":       "log_level",
	"movierec_cutoffs":         "cutoffs",
	"movierec_watch_artifacts": "watch_artifacts",
	"movierec_reload_debounce": "reload_debounce",
	"movierec_desktop_notify":  "desktop_notify",
	"movierec_mail_server":     "mail.server",
	"movierec_mail_port":       "mail.port",
	"movierec_mail_sender":     "mail.sender",
	"movierec_mail_user":       "mail.user",
	"movierec_mail_password":   "mail.password",
	"movierec_mail_recipients": "mail.recipients",
}

// envTransformFunc maps an environment variable name to a config path.
// Unknown variables are skipped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// sliceConfigPaths are split on commas when they arrive as strings.
var sliceConfigPaths = []string{"cutoffs", "mail.recipients"}

// Load reads configuration from .env files, an optional YAML file and
// environment variables, in increasing priority. An empty path searches the
// default locations.
func Load(path string) (*Config, error) {
	// Try loading .env from multiple locations
	for _, envPath := range getEnvPaths() {
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			break
		}
	}

	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	configPath := findConfigFile(path)
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	if err := processSliceFields(k); err != nil {
		return nil, err
	}
	if err := processDurationFields(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	cfg.ConfigFile = configPath

	if err := cfg.resolvePaths(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Ensure cache and log directories exist
	if err := ensureDir(filepath.Dir(cfg.CacheDBPath)); err != nil {
		return nil, err
	}
	if cfg.LogFile != "" {
		if err := ensureDir(filepath.Dir(cfg.LogFile)); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate checks values that would break the dashboard.
func (c *Config) Validate() error {
	var errs []error
	if c.ArtifactsDir == "" {
		errs = append(errs, errors.New("artifacts_dir is empty"))
	}
	if c.CacheDBPath == "" {
		errs = append(errs, errors.New("cache_db_path is empty"))
	}
	if c.ReloadDebounce < 0 {
		errs = append(errs, fmt.Errorf("reload_debounce %s is negative", c.ReloadDebounce))
	}
	for _, k := range c.Cutoffs {
		if k <= 0 {
			errs = append(errs, fmt.Errorf("cutoff %d is not positive", k))
		}
	}
	if c.Mail.Port < 0 || c.Mail.Port > 65535 {
		errs = append(errs, fmt.Errorf("mail port %d out of range", c.Mail.Port))
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.LogLevel))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// MailRecipients returns the configured recipients, defaulting to the sender.
func (c *Config) MailRecipients() []string {
	if len(c.Mail.Recipients) > 0 {
		return c.Mail.Recipients
	}
	if c.Mail.Sender != "" {
		return []string{c.Mail.Sender}
	}
	return nil
}

// resolvePaths expands "~" and derives data directories from Root.
func (c *Config) resolvePaths() error {
	var err error
	for _, p := range []*string{&c.Root, &c.ArtifactsDir, &c.DataFramesDir, &c.MovieLensDir, &c.CacheDBPath, &c.LogFile} {
		if *p == "" {
			continue
		}
		if *p, err = homedir.Expand(*p); err != nil {
			return fmt.Errorf("failed to expand %q: %w", *p, err)
		}
	}

	if c.ArtifactsDir == "" {
		c.ArtifactsDir = filepath.Join(c.Root, "data", "models")
	}
	if c.DataFramesDir == "" {
		c.DataFramesDir = filepath.Join(c.Root, "data", "dataframes")
	}
	if c.MovieLensDir == "" {
		c.MovieLensDir = filepath.Join(c.Root, "data", "raw", "ml-25m")
	}
	return nil
}

// findConfigFile returns the explicit path, the path from MOVIEREC_CONFIG or
// the first default location that exists.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range defaultConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func defaultConfigPaths() []string {
	paths := []string{"movierec.yaml", "movierec.yml"}
	if dir, err := configDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "config.yaml"), filepath.Join(dir, "config.yml"))
	}
	return paths
}

// processSliceFields converts comma-separated strings to slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// processDurationFields accepts bare integers as seconds.
func processDurationFields(k *koanf.Koanf) error {
	strVal, ok := k.Get("reload_debounce").(string)
	if !ok {
		return nil
	}
	if secs, err := strconv.Atoi(strVal); err == nil {
		if err := k.Set("reload_debounce", time.Duration(secs)*time.Second); err != nil {
			return fmt.Errorf("failed to set reload_debounce: %w", err)
		}
	}
	return nil
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	if dir, err := configDir(); err == nil {
		paths = append(paths, filepath.Join(dir, ".env"))
	}

	// Parent directories (useful for development)
	if cwd, err := os.Getwd(); err == nil {
		parent := filepath.Dir(cwd)
		paths = append(paths, filepath.Join(parent, ".env"))
		grandparent := filepath.Dir(parent)
		paths = append(paths, filepath.Join(grandparent, ".env"))
	}

	return paths
}

// configDir returns ~/.config/movierec.
func configDir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "movierec"), nil
}

// getDefaultCachePath returns the default path for the SQLite summary cache.
func getDefaultCachePath() string {
	dir, err := configDir()
	if err != nil {
		return "movierec-cache.db"
	}
	return filepath.Join(dir, "cache.db")
}

// getDefaultLogPath returns the default log file path.
func getDefaultLogPath() string {
	dir, err := configDir()
	if err != nil {
		return "movierec.log"
	}
	return filepath.Join(dir, "movierec.log")
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
