package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/takeshixx/kleber"
)

// EnvPrefix is the prefix of all environment variables read by the loader.
const EnvPrefix = "KLEBER"

// Config holds the resolved credentials.
type Config struct {
	APIKey string `mapstructure:"api_key" validate:"required"`

	// Path is the config file the key was read from. It is empty when the
	// key was passed explicitly or through the environment.
	Path string `mapstructure:"-"`
}

// Options controls where Load looks for the API key.
type Options struct {
	APIKey     string
	ConfigFile string

	// BinaryDir is searched for a .kleberrc before anything else.
	// Defaults to the directory of the running executable.
	BinaryDir string

	// HomeDir holds the fallback .kleberrc. Defaults to the user's home.
	HomeDir string

	Logger *slog.Logger
}

// Load resolves the API key from opts, the environment and the config file.
func Load(opts Options) (*Config, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	_ = v.BindEnv("api_key")
	_ = v.BindEnv("config")

	if opts.APIKey != "" {
		v.Set("api_key", opts.APIKey)
	}

	if key := strings.TrimSpace(v.GetString("api_key")); key != "" {
		log.Debug("using explicit api key")
		return &Config{APIKey: key}, nil
	}

	if opts.ConfigFile == "" {
		opts.ConfigFile = v.GetString("config")
	}
	path := ResolvePath(opts)
	log.Debug("reading config file", "path", path)

	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", kleber.ErrConfigUnreadable, path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", kleber.ErrConfigUnreadable, path, err)
	}
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.Path = path

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("%w: could not load api_key from %s", kleber.ErrCredentialMissing, path)
	}

	return &cfg, nil
}

// ResolvePath returns the config file Load would read when no key is given
// explicitly. A .kleberrc next to the binary takes precedence over
// opts.ConfigFile, which takes precedence over ~/.kleberrc.
func ResolvePath(opts Options) string {
	binDir := opts.BinaryDir
	if binDir == "" {
		if exe, err := os.Executable(); err == nil {
			binDir = filepath.Dir(exe)
		}
	}
	if binDir != "" {
		local := filepath.Join(binDir, kleber.RCFileName)
		if isFile(local) {
			return local
		}
	}

	if opts.ConfigFile != "" {
		return opts.ConfigFile
	}

	return DefaultPath(opts.HomeDir)
}

// DefaultPath returns ~/.kleberrc, using home instead of the user's home
// directory when it is not empty.
func DefaultPath(home string) string {
	if home == "" {
		var err error
		home, err = os.UserHomeDir()
		if err != nil {
			return kleber.RCFileName
		}
	}
	return filepath.Join(home, kleber.RCFileName)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
