// Package config resolves paramd's runtime settings. Sources, lowest to
// highest precedence: Defaults, a config file, a .env file, PARAMD_*
// environment variables. CLI flags are applied by the caller last.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"paramd/internal/common/fsutil"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "PARAMD_"

// Config holds runtime parameters for the service.
type Config struct {
	Addr                  string   `json:"addr" yaml:"addr" toml:"addr" validate:"required,hostname_port"`
	LogLevel              string   `json:"log_level" yaml:"log_level" toml:"log_level" validate:"oneof=debug info warn error off"`
	LogFormat             string   `json:"log_format" yaml:"log_format" toml:"log_format" validate:"oneof=console json"`
	MaxBodyBytes          int64    `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes" validate:"gte=0"`
	RequestTimeoutSeconds int64    `json:"request_timeout_seconds" yaml:"request_timeout_seconds" toml:"request_timeout_seconds" validate:"gte=0"`
	CORSEnabled           bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled"`
	CORSAllowedOrigins    []string `json:"cors_allowed_origins" yaml:"cors_allowed_origins" toml:"cors_allowed_origins" validate:"required_if=CORSEnabled true,dive,required"`
	CORSAllowedMethods    []string `json:"cors_allowed_methods" yaml:"cors_allowed_methods" toml:"cors_allowed_methods" validate:"dive,required"`
	CORSAllowedHeaders    []string `json:"cors_allowed_headers" yaml:"cors_allowed_headers" toml:"cors_allowed_headers" validate:"dive,required"`
	DocsEnabled           bool     `json:"docs_enabled" yaml:"docs_enabled" toml:"docs_enabled"`
}

// Defaults returns the settings used when nothing else is specified.
func Defaults() Config {
	return Config{
		Addr:               ":8000",
		LogLevel:           "info",
		LogFormat:          "console",
		MaxBodyBytes:       1 << 20,
		CORSAllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		CORSAllowedHeaders: []string{"Accept", "Content-Type", "X-Log-Level", "X-Request-Id"},
		DocsEnabled:        true,
	}
}

// Load reads a configuration file based on its extension on top of
// Defaults. Keys absent from the file keep their default.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	p, err := fsutil.ResolveFile(path)
	if err != nil {
		return cfg, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return cfg, err
	}
	switch fsutil.Format(p) {
	case "yaml":
		err = yaml.Unmarshal(b, &cfg)
	case "json":
		err = json.Unmarshal(b, &cfg)
	case "toml":
		err = toml.Unmarshal(b, &cfg)
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", p)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse %s: %w", p, err)
	}
	return cfg, nil
}

// LoadEnvFile exports the variables of a .env file into the process
// environment. Variables already set in the environment win. An empty path
// means ".env" in the working directory, which may be absent.
func LoadEnvFile(path string) error {
	if path == "" {
		if !fsutil.PathExists(".env") {
			return nil
		}
		path = ".env"
	}
	p, err := fsutil.ResolveFile(path)
	if err != nil {
		return err
	}
	if err := godotenv.Load(p); err != nil {
		return fmt.Errorf("env file %s: %w", p, err)
	}
	return nil
}

// overrides mirrors Config for the environment: nil means unset. Lists are
// comma separated.
type overrides struct {
	Addr                  *string `koanf:"addr"`
	LogLevel              *string `koanf:"log_level"`
	LogFormat             *string `koanf:"log_format"`
	MaxBodyBytes          *int64  `koanf:"max_body_bytes"`
	RequestTimeoutSeconds *int64  `koanf:"request_timeout_seconds"`
	CORSEnabled           *bool   `koanf:"cors_enabled"`
	CORSAllowedOrigins    *string `koanf:"cors_allowed_origins"`
	CORSAllowedMethods    *string `koanf:"cors_allowed_methods"`
	CORSAllowedHeaders    *string `koanf:"cors_allowed_headers"`
	DocsEnabled           *bool   `koanf:"docs_enabled"`
}

// ApplyEnv overlays PARAMD_* environment variables onto cfg, e.g.
// PARAMD_MAX_BODY_BYTES -> max_body_bytes.
func ApplyEnv(cfg *Config) error {
	k := koanf.New(".")
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	var o overrides
	if err := k.Unmarshal("", &o); err != nil {
		return fmt.Errorf("environment overrides: %w", err)
	}
	setIf(&cfg.Addr, o.Addr)
	setIf(&cfg.LogLevel, o.LogLevel)
	setIf(&cfg.LogFormat, o.LogFormat)
	setIf(&cfg.MaxBodyBytes, o.MaxBodyBytes)
	setIf(&cfg.RequestTimeoutSeconds, o.RequestTimeoutSeconds)
	setIf(&cfg.CORSEnabled, o.CORSEnabled)
	setIf(&cfg.DocsEnabled, o.DocsEnabled)
	if o.CORSAllowedOrigins != nil {
		cfg.CORSAllowedOrigins = SplitCSV(*o.CORSAllowedOrigins)
	}
	if o.CORSAllowedMethods != nil {
		cfg.CORSAllowedMethods = SplitCSV(*o.CORSAllowedMethods)
	}
	if o.CORSAllowedHeaders != nil {
		cfg.CORSAllowedHeaders = SplitCSV(*o.CORSAllowedHeaders)
	}
	return nil
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// SplitCSV splits a comma separated list, dropping blanks.
func SplitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate reports every invalid setting.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, fmt.Errorf("config: %s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return errors.Join(errs...)
}

// Gather builds the configuration from an optional config file, an
// optional .env file and the environment without validating it, so callers
// can apply their own overrides first.
func Gather(path, envFile string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return cfg, err
		}
	}
	if err := LoadEnvFile(envFile); err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Resolve is Gather followed by Validate.
func Resolve(path, envFile string) (Config, error) {
	cfg, err := Gather(path, envFile)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}
