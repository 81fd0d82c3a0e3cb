// Package config loads scan settings from flags, DRAFTSCAN_* environment
// variables and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pthm/draftscan/internal/reporter"
)

// EnvPrefix prefixes every environment variable, e.g. DRAFTSCAN_MODE
const EnvPrefix = "DRAFTSCAN"

// Modes
const (
	ModeAnalyze = "analyze"
	ModeFilter  = "filter"
)

// Defaults
const (
	DefaultMode              = ModeAnalyze
	DefaultSeverityThreshold = 25
	DefaultFormat            = "json"
)

// keys maps configuration keys to their flag names
var keys = map[string]string{
	"mode":                "mode",
	"severity_threshold":  "severity-threshold",
	"replace_with_marker": "replace-with-marker",
	"format":              "format",
	"verbose":             "verbose",
}

// Config holds the resolved settings for a run
type Config struct {
	Mode              string `mapstructure:"mode" validate:"oneof=analyze filter"`
	SeverityThreshold int    `mapstructure:"severity_threshold" validate:"min=0"`
	ReplaceWithMarker bool   `mapstructure:"replace_with_marker"`
	Format            string `mapstructure:"format" validate:"format"`
	Verbose           bool   `mapstructure:"verbose"`
}

// New returns a viper instance with defaults and environment lookup set up
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("mode", DefaultMode)
	v.SetDefault("severity_threshold", DefaultSeverityThreshold)
	v.SetDefault("replace_with_marker", false)
	v.SetDefault("format", DefaultFormat)
	v.SetDefault("verbose", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

// BindFlags binds every known flag present in flags. Flags only override
// lower layers when set on the command line.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for key, name := range keys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag %s: %w", name, err)
		}
	}
	return nil
}

// Load reads the optional config file at path and returns the validated config
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// registration only fails for an empty tag or a nil func
	_ = v.RegisterValidation("format", func(fl validator.FieldLevel) bool {
		return reporter.IsKnownFormat(fl.Field().String())
	})
	return v
}

// Validate checks every field against its allowed values. A threshold
// above the maximum severity removes only flag-forced sections.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return &ValidationError{Problems: msgs}
}

func describe(fe validator.FieldError) string {
	name := keys[toKey(fe.Field())]
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("--%s must be one of %s, got %q", name,
			strings.Join(strings.Fields(fe.Param()), ", "), fe.Value())
	case "format":
		return fmt.Sprintf("--%s must be one of %s, got %q", name,
			strings.Join(reporter.Formats, ", "), fe.Value())
	case "min":
		return fmt.Sprintf("--%s must be at least %s, got %v", name, fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("--%s is invalid", name)
	}
}

// toKey converts a field name like SeverityThreshold to severity_threshold
func toKey(field string) string {
	var sb strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				sb.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// ValidationError lists every invalid setting
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid configuration: " + strings.Join(e.Problems, "; ")
}
