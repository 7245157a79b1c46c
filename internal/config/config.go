package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/xtding233/matchup-backend/internal/constants"
)

// Config is the resolved server configuration.
type Config struct {
	HTTPAddr       string
	GRPCAddr       string // empty disables the gRPC listener
	DataDir        string
	Generations    []int // empty: load every set file found
	LogLevel       string
	ReloadInterval time.Duration // 0 disables hot reload
}

// RawConfig mirrors the YAML file. Nil means "not set in the file".
type RawConfig struct {
	HTTPAddr       *string `yaml:"http_addr"`
	GRPCAddr       *string `yaml:"grpc_addr"`
	DataDir        *string `yaml:"data_dir"`
	Generations    []int   `yaml:"generations"`
	LogLevel       *string `yaml:"log_level"`
	ReloadInterval *string `yaml:"reload_interval"` // time.ParseDuration syntax
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		HTTPAddr:       ":8080",
		GRPCAddr:       ":9090",
		DataDir:        "./data",
		LogLevel:       "info",
		ReloadInterval: 2 * time.Second,
	}
}

// Load merges defaults <- file <- environment and validates the result.
// An empty path or a missing file leaves the defaults in place.
func Load(path string, getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	raw, err := readYAML(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	raw = mergeRaw(raw, fromEnv(getenv))

	cfg, err := apply(Default(), raw)
	if err != nil {
		return Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// readYAML loads a YAML file into RawConfig. Missing files return zero cfg, no error.
func readYAML(path string) (RawConfig, error) {
	var raw RawConfig
	if path == "" {
		return raw, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, nil
		}
		return RawConfig{}, err
	}
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return RawConfig{}, err
	}
	return raw, nil
}

func fromEnv(getenv func(string) string) RawConfig {
	var raw RawConfig
	set := func(key string) *string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return &v
		}
		return nil
	}
	raw.HTTPAddr = set(constants.EnvHTTPAddr)
	raw.GRPCAddr = set(constants.EnvGRPCAddr)
	raw.DataDir = set(constants.EnvDataDir)
	raw.LogLevel = set(constants.EnvLogLevel)
	raw.ReloadInterval = set(constants.EnvReloadInterval)
	return raw
}

// mergeRaw overlays b on a where b is set.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a
	if b.HTTPAddr != nil {
		out.HTTPAddr = b.HTTPAddr
	}
	if b.GRPCAddr != nil {
		out.GRPCAddr = b.GRPCAddr
	}
	if b.DataDir != nil {
		out.DataDir = b.DataDir
	}
	if b.Generations != nil {
		out.Generations = append([]int(nil), b.Generations...)
	}
	if b.LogLevel != nil {
		out.LogLevel = b.LogLevel
	}
	if b.ReloadInterval != nil {
		out.ReloadInterval = b.ReloadInterval
	}
	return out
}

func apply(base Config, raw RawConfig) (Config, error) {
	out := base
	if raw.HTTPAddr != nil {
		out.HTTPAddr = *raw.HTTPAddr
	}
	if raw.GRPCAddr != nil {
		out.GRPCAddr = *raw.GRPCAddr
	}
	if raw.DataDir != nil {
		out.DataDir = *raw.DataDir
	}
	if raw.Generations != nil {
		out.Generations = raw.Generations
	}
	if raw.LogLevel != nil {
		out.LogLevel = strings.ToLower(*raw.LogLevel)
	}
	if raw.ReloadInterval != nil {
		d, err := parseInterval(*raw.ReloadInterval)
		if err != nil {
			return Config{}, fmt.Errorf("reload_interval: %w", err)
		}
		out.ReloadInterval = d
	}
	return out, nil
}

// parseInterval accepts a duration ("2s") or a bare number of seconds.
func parseInterval(s string) (time.Duration, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(s)
}

// Validate checks semantic constraints of a Config.
func Validate(cfg Config) error {
	var errs []string

	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		errs = append(errs, "http_addr is required")
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		errs = append(errs, "data_dir is required")
	}
	for i, g := range cfg.Generations {
		if g < 1 || g > 9 {
			errs = append(errs, fmt.Sprintf("generations[%d] must be in [1,9]", i))
		}
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, "log_level must be one of: debug, info, warn, error")
	}
	if cfg.ReloadInterval < 0 {
		errs = append(errs, "reload_interval must be >= 0 (0 disables reload)")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
