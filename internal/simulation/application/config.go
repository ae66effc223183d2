package application

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"tariff-simulator/internal/ingestion/domain"
	"tariff-simulator/internal/rating/domain"
)

const (
	defaultHelpMessage    = "We could not process this file. Check that it is the consumption export from your distributor, with its supply and reading sections intact, and try again."
	defaultSummaryMessage = "no summary available"
)

// Config defines the simulator configuration.
type Config struct {
	Layout           ingestion.Layout `yaml:"layout"`
	Taxes            rating.TaxPolicy `yaml:"taxes"`
	CurrentPlanName  string           `yaml:"current_plan_name"`
	AssistantTimeout time.Duration    `yaml:"assistant_timeout"`
	FallbackHelp     string           `yaml:"fallback_help"`
	FallbackSummary  string           `yaml:"fallback_summary"`
	HistoryLimit     int              `yaml:"history_limit"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Layout:           ingestion.DefaultLayout(),
		Taxes:            rating.DefaultTaxPolicy(),
		CurrentPlanName:  rating.DefaultCurrentPlanName,
		AssistantTimeout: 5 * time.Second,
		FallbackHelp:     defaultHelpMessage,
		FallbackSummary:  defaultSummaryMessage,
		HistoryLimit:     50,
	}
}

// LoadConfig loads config from yaml or env.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	if path := os.Getenv("SIMULATOR_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	if value := strings.TrimSpace(os.Getenv("CURRENT_PLAN_NAME")); value != "" {
		cfg.CurrentPlanName = value
	}
	if cfg.CurrentPlanName == "" {
		cfg.CurrentPlanName = rating.DefaultCurrentPlanName
	}
	if value := os.Getenv("ASSISTANT_TIMEOUT"); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			cfg.AssistantTimeout = parsed
		}
	}
	if value := os.Getenv("SPECIAL_TAX_RATE"); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			cfg.Taxes.SpecialTaxRate = parsed
		}
	}
	if value := os.Getenv("VAT_RATE"); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			cfg.Taxes.VATRate = parsed
		}
	}
	if cfg.FallbackHelp == "" {
		cfg.FallbackHelp = defaultHelpMessage
	}
	if cfg.FallbackSummary == "" {
		cfg.FallbackSummary = defaultSummaryMessage
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = 50
	}
	return cfg, cfg.Validate()
}

// Validate checks the layout, tax rates and timeout.
func (c Config) Validate() error {
	if err := c.Layout.Validate(); err != nil {
		return err
	}
	if err := c.Taxes.Validate(); err != nil {
		return err
	}
	if c.AssistantTimeout <= 0 {
		return errors.New("simulator: assistant timeout must be positive")
	}
	return nil
}
