package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gyeh/claimflag/internal/classify"
	"github.com/gyeh/claimflag/internal/lookup"
)

// Config holds all runtime configuration for a claimflag run.
type Config struct {
	DSN       string
	FilePath  string
	OutPath   string
	LookupURL string
	LogFormat string // "text" or "json"

	Mode   classify.Mode
	Binary bool

	// Classification and lookup tuning, overridable from a YAML file.
	PaidThresholdCents  int64         `yaml:"paid_threshold_cents"`
	LookbackMonths      int           `yaml:"lookback_months"`
	MinPrimaryPaidCents int64         `yaml:"min_primary_paid_cents"`
	MinLinkedPaidCents  int64         `yaml:"min_linked_paid_cents"`
	ProviderType        string        `yaml:"provider_type"`
	PollInterval        time.Duration `yaml:"poll_interval"`
	PollTimeout         time.Duration `yaml:"poll_timeout"`
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	PaidThresholdCents  *int64         `yaml:"paid_threshold_cents"`
	LookbackMonths      *int           `yaml:"lookback_months"`
	MinPrimaryPaidCents *int64         `yaml:"min_primary_paid_cents"`
	MinLinkedPaidCents  *int64         `yaml:"min_linked_paid_cents"`
	ProviderType        *string        `yaml:"provider_type"`
	PollInterval        *time.Duration `yaml:"poll_interval"`
	PollTimeout         *time.Duration `yaml:"poll_timeout"`
}

// ApplyDefaults fills unset tuning fields with the production defaults.
func (c *Config) ApplyDefaults() {
	p := lookup.DefaultParams()
	if c.PaidThresholdCents == 0 {
		c.PaidThresholdCents = classify.DefaultPaidThresholdCents
	}
	if c.LookbackMonths == 0 {
		c.LookbackMonths = p.LookbackMonths
	}
	if c.MinLinkedPaidCents == 0 {
		c.MinLinkedPaidCents = p.MinLinkedPaidCents
	}
	if c.ProviderType == "" {
		c.ProviderType = p.ProviderType
	}
	if c.PollInterval == 0 {
		c.PollInterval = 2 * time.Second
	}
	if c.PollTimeout == 0 {
		c.PollTimeout = 10 * time.Minute
	}
}

// LoadFromFile reads a YAML config file and merges the values it sets into
// Config; fields absent from the file are left alone.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if yc.PaidThresholdCents != nil {
		c.PaidThresholdCents = *yc.PaidThresholdCents
	}
	if yc.LookbackMonths != nil {
		c.LookbackMonths = *yc.LookbackMonths
	}
	if yc.MinPrimaryPaidCents != nil {
		c.MinPrimaryPaidCents = *yc.MinPrimaryPaidCents
	}
	if yc.MinLinkedPaidCents != nil {
		c.MinLinkedPaidCents = *yc.MinLinkedPaidCents
	}
	if yc.ProviderType != nil {
		c.ProviderType = *yc.ProviderType
	}
	if yc.PollInterval != nil {
		c.PollInterval = *yc.PollInterval
	}
	if yc.PollTimeout != nil {
		c.PollTimeout = *yc.PollTimeout
	}
	return c.validateTuning()
}

func (c *Config) validateTuning() error {
	if c.PaidThresholdCents < 0 {
		return fmt.Errorf("paid_threshold_cents must be >= 0")
	}
	if c.LookbackMonths < 0 {
		return fmt.Errorf("lookback_months must be >= 0")
	}
	if c.MinPrimaryPaidCents < 0 || c.MinLinkedPaidCents < 0 {
		return fmt.Errorf("paid floors must be >= 0")
	}
	return nil
}

// LookupParams returns the lookup-service parameters for this run.
func (c *Config) LookupParams() lookup.Params {
	return lookup.Params{
		LookbackMonths:      c.LookbackMonths,
		MinPrimaryPaidCents: c.MinPrimaryPaidCents,
		MinLinkedPaidCents:  c.MinLinkedPaidCents,
		ProviderType:        c.ProviderType,
	}
}

// Validate checks required fields for a classification run.
func (c *Config) Validate() error {
	if c.FilePath == "" {
		return fmt.Errorf("--file is required")
	}
	if _, err := os.Stat(c.FilePath); err != nil {
		return fmt.Errorf("file not accessible: %w", err)
	}
	return c.validateTuning()
}

// ValidateWithOut additionally requires an output path.
func (c *Config) ValidateWithOut() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.OutPath == "" {
		return fmt.Errorf("--out is required")
	}
	return nil
}

// ValidateWithDSN checks both file and DSN fields.
func (c *Config) ValidateWithDSN() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DSN == "" {
		return fmt.Errorf("--dsn or CLAIMFLAG_DB_URL is required")
	}
	return nil
}
