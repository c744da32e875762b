package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromFile_Valid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte("paid_threshold_cents: 5000\nlookback_months: 12\npoll_interval: 500ms\n"), 0644)

	var c Config
	c.ApplyDefaults()
	if err := c.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if c.PaidThresholdCents != 5000 {
		t.Errorf("PaidThresholdCents: got %d", c.PaidThresholdCents)
	}
	if c.LookbackMonths != 12 {
		t.Errorf("LookbackMonths: got %d", c.LookbackMonths)
	}
	if c.PollInterval != 500*time.Millisecond {
		t.Errorf("PollInterval: got %v", c.PollInterval)
	}
	// Fields absent from the file keep their defaults.
	if c.MinLinkedPaidCents != 7400 {
		t.Errorf("MinLinkedPaidCents: got %d, want default 7400", c.MinLinkedPaidCents)
	}
	if c.ProviderType != "practitioner" {
		t.Errorf("ProviderType: got %q", c.ProviderType)
	}
}

func TestLoadFromFile_NegativeThreshold(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte("paid_threshold_cents: -1\n"), 0644)

	var c Config
	if err := c.LoadFromFile(path); err == nil {
		t.Fatal("expected error for negative threshold")
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	var c Config
	if err := c.LoadFromFile("/nonexistent/config.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestApplyDefaults(t *testing.T) {
	var c Config
	c.ApplyDefaults()
	if c.PaidThresholdCents != 7500 {
		t.Errorf("PaidThresholdCents: got %d, want 7500", c.PaidThresholdCents)
	}
	p := c.LookupParams()
	if p.LookbackMonths != 18 || p.MinLinkedPaidCents != 7400 || p.ProviderType != "practitioner" {
		t.Errorf("unexpected default params: %+v", p)
	}
}

func TestValidate_RequiresFile(t *testing.T) {
	var c Config
	if err := c.Validate(); err == nil {
		t.Fatal("expected error when --file is missing")
	}
	c.FilePath = "/nonexistent/claims.parquet"
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for inaccessible file")
	}
}
