package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"go.uber.org/fx"
	"proxy-normalizer/internal/domain"
)

var Module = fx.Provide(NewConfig)

var validate *validator.Validate

type Config struct {
	Sources   []domain.Source  `json:"sources" validate:"required,min=1,dive"`
	Workers   Workers          `json:"workers"`
	Exporters []ExporterConfig `json:"exporters" validate:"dive"`
	Metrics   Metrics          `json:"metrics"`
}

type Workers struct {
	// Count of conversion workers; 0 means one per CPU.
	Count int `json:"count" validate:"gte=0"`
	// RunInterval in seconds between conversion runs; 0 converts once.
	RunInterval int `json:"run_interval" validate:"gte=0"`
}

type Metrics struct {
	Listen string `json:"listen" validate:"omitempty,hostname_port"`
}

// NewConfig creates a new Config instance from the environment
func NewConfig() (*Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.json"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config: %w", err)
	}

	return Parse(data)
}

// Parse decodes and validates a JSON configuration document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return nil, formatValidationErrors(validationErrors)
		}
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := checkSourceNames(&cfg); err != nil {
		return nil, err
	}

	if cfg.Workers.Count == 0 {
		cfg.Workers.Count = runtime.NumCPU()
	}

	return &cfg, nil
}

// checkSourceNames rejects duplicate source names and exporters watching
// sources that do not exist.
func checkSourceNames(cfg *Config) error {
	names := make(map[domain.SourceName]struct{}, len(cfg.Sources))
	for _, src := range cfg.Sources {
		if _, exists := names[src.Name]; exists {
			return fmt.Errorf("duplicate source name found: %s", src.Name)
		}
		names[src.Name] = struct{}{}
	}

	for _, exp := range cfg.Exporters {
		for _, watch := range exp.Watches {
			if _, exists := names[watch]; !exists {
				return fmt.Errorf("exporter %s watches unknown source: %s", exp.Type, watch)
			}
		}
	}

	return nil
}

func init() {
	validate = validator.New()

	if err := validate.RegisterValidation("region", validateRegion); err != nil {
		panic(fmt.Sprintf("failed to register region validator: %v", err))
	}
}

// validateRegion accepts an empty region or a short tag such as "JP" or a
// flag emoji. Whitespace inside the tag would break name deduplication.
func validateRegion(fl validator.FieldLevel) bool {
	region := fl.Field().String()
	if region == "" {
		return true
	}
	if strings.TrimSpace(region) != region || strings.ContainsAny(region, " \t") {
		return false
	}
	return utf8.RuneCountInString(region) <= 8
}

// formatValidationErrors formats validation errors into a user-friendly error message
func formatValidationErrors(errors validator.ValidationErrors) error {
	var errMsgs []string
	for _, err := range errors {
		errMsgs = append(errMsgs, fmt.Sprintf(
			"field '%s' failed validation: %s",
			err.Field(),
			err.Tag(),
		))
	}
	return fmt.Errorf("validation errors: %v", errMsgs)
}
