package gossipguard

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ValidatorConfig holds the scalar tunables the pipeline reads at
// construction time. Values are immutable for the life of a Validator;
// changing a policy requires constructing a new one.
type ValidatorConfig struct {
	MaxMessageBytes     int     `yaml:"max_message_bytes"`
	TokenBucketCapacity float64 `yaml:"token_bucket_capacity"`
	TokenRefillRate     float64 `yaml:"token_refill_rate"`
	QuarantineThreshold float64 `yaml:"quarantine_threshold"`
	MaxPeers            int     `yaml:"max_peers"`
	MaxDedupe           int     `yaml:"max_dedupe"`
	OffenceHardCap      int     `yaml:"offence_hard_cap"`
	OffenceScale        float64 `yaml:"offence_scale"`
}

// DefaultValidatorConfig returns the tunables implied by the pipeline's
// worked scenarios: a 100-token bucket refilling at 50/s, quarantine at
// score ≤ -90 or more than 4 offences, 50% escalation per repeat offence,
// and bounded registries sized for a single-process capped simulation.
// MaxMessageBytes has no universal default and is left to the caller.
func DefaultValidatorConfig() ValidatorConfig {
	return ValidatorConfig{
		TokenBucketCapacity: 100,
		TokenRefillRate:     50,
		QuarantineThreshold: -90,
		MaxPeers:            1000,
		MaxDedupe:           10000,
		OffenceHardCap:      4,
		OffenceScale:        0.5,
	}
}

// LoadConfigYAML decodes a YAML document into a ValidatorConfig, starting
// from DefaultValidatorConfig so that a deployment's override file only
// needs to name the options it wants to change.
func LoadConfigYAML(r io.Reader) (ValidatorConfig, error) {
	cfg := DefaultValidatorConfig()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return ValidatorConfig{}, fmt.Errorf("gossipguard: decode config: %w", err)
	}
	return cfg, nil
}
