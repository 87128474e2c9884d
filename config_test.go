package gossipguard

import (
	"strings"
	"testing"
)

func TestDefaultValidatorConfig(t *testing.T) {
	cfg := DefaultValidatorConfig()
	if cfg.TokenBucketCapacity != 100 || cfg.TokenRefillRate != 50 {
		t.Fatalf("unexpected token bucket defaults: %+v", cfg)
	}
	if cfg.QuarantineThreshold != -90 {
		t.Fatalf("unexpected quarantine threshold: %v", cfg.QuarantineThreshold)
	}
	if cfg.OffenceHardCap != 4 || cfg.OffenceScale != 0.5 {
		t.Fatalf("unexpected offence defaults: %+v", cfg)
	}
	if cfg.MaxPeers != 1000 || cfg.MaxDedupe != 10000 {
		t.Fatalf("unexpected capacity defaults: %+v", cfg)
	}
}

func TestLoadConfigYAMLOverridesDefaults(t *testing.T) {
	doc := `
max_message_bytes: 16384
quarantine_threshold: -120
`
	cfg, err := LoadConfigYAML(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadConfigYAML: %v", err)
	}
	if cfg.MaxMessageBytes != 16384 {
		t.Fatalf("expected override to apply, got %d", cfg.MaxMessageBytes)
	}
	if cfg.QuarantineThreshold != -120 {
		t.Fatalf("expected override to apply, got %v", cfg.QuarantineThreshold)
	}
	// Unset fields keep the defaults.
	if cfg.TokenBucketCapacity != 100 {
		t.Fatalf("expected default to survive partial override, got %v", cfg.TokenBucketCapacity)
	}
}

func TestLoadConfigYAMLEmptyDocumentKeepsDefaults(t *testing.T) {
	cfg, err := LoadConfigYAML(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadConfigYAML: %v", err)
	}
	if cfg != DefaultValidatorConfig() {
		t.Fatalf("expected defaults unchanged, got %+v", cfg)
	}
}
