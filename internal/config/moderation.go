package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultPath = "configs/moderation.yaml"

// LoadModerationConfig reads the moderation policy YAML. The path
// comes from MODERATION_CONFIG_PATH; when unset and the default file
// is absent, built-in defaults apply so the engine works without a
// config file on disk.
func LoadModerationConfig() (*ModerationConfig, error) {
	path := os.Getenv("MODERATION_CONFIG_PATH")
	explicit := path != ""
	if !explicit {
		path = defaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			cfg := &ModerationConfig{}
			applyDefaults(cfg)
			return cfg, nil
		}
		return nil, err
	}

	var cfg ModerationConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *ModerationConfig) {
	if cfg.Classification.UnsafeThreshold == 0 {
		cfg.Classification.UnsafeThreshold = 0.7
	}
	if cfg.Classification.SensitiveThreshold == 0 {
		cfg.Classification.SensitiveThreshold = 0.4
	}
	if cfg.Image.MaxSeverity == 0 {
		cfg.Image.MaxSeverity = 6
	}
	if cfg.Text.Protocol == "" {
		cfg.Text.Protocol = TextProtocolSync
	}
	if cfg.Text.JobKind == "" {
		cfg.Text.JobKind = TextJobKindContentSafety
	}
	if cfg.Text.MaxSeverity == 0 {
		cfg.Text.MaxSeverity = 6
	}
	if cfg.Text.MaxLength == 0 {
		cfg.Text.MaxLength = 5000
	}
	if cfg.Categories.Canonical == nil {
		cfg.Categories.Canonical = []string{"violence", "sexual", "self_harm", "hate"}
	}
	if cfg.Categories.Aliases == nil {
		cfg.Categories.Aliases = map[string]string{
			"violence":  "violence",
			"sexual":    "sexual",
			"selfharm":  "self_harm",
			"self_harm": "self_harm",
			"self-harm": "self_harm",
			"hate":      "hate",
		}
	}
}

func (c *ModerationConfig) Validate() error {
	if c.Classification.UnsafeThreshold <= c.Classification.SensitiveThreshold {
		return fmt.Errorf("unsafe threshold %g must be above sensitive threshold %g",
			c.Classification.UnsafeThreshold, c.Classification.SensitiveThreshold)
	}
	if c.Text.Protocol != TextProtocolSync && c.Text.Protocol != TextProtocolJobs {
		return fmt.Errorf("unsupported text protocol: %s", c.Text.Protocol)
	}
	if c.Text.JobKind != TextJobKindContentSafety && c.Text.JobKind != TextJobKindSentiment {
		return fmt.Errorf("unsupported text job kind: %s", c.Text.JobKind)
	}
	if c.Image.MaxSeverity < 0 || c.Text.MaxSeverity < 0 {
		return fmt.Errorf("max severity must be positive")
	}
	return nil
}
