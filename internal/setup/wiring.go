package setup

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/mediaguard/mediaguard/internal/config"
	"github.com/mediaguard/mediaguard/internal/engine"
	"github.com/mediaguard/mediaguard/internal/moderation"
	"github.com/mediaguard/mediaguard/internal/moderation/contentsafety"
	"github.com/mediaguard/mediaguard/internal/moderation/language"
)

type Config struct {
	ContentSafetyEndpoint string
	ContentSafetyKey      string
	LanguageEndpoint      string
	LanguageKey           string
	Region                string
}

type Dependencies struct {
	Engine     *engine.Engine
	Moderation *config.ModerationConfig
	Logger     *zerolog.Logger
}

var requiredEnvKeys = []string{
	"AZURE_CONTENT_SAFETY_ENDPOINT",
	"AZURE_CONTENT_SAFETY_KEY",
	"AZURE_LANGUAGE_ENDPOINT",
	"AZURE_LANGUAGE_KEY",
}

func LoadConfig() *Config {
	return &Config{
		ContentSafetyEndpoint: getEnv("AZURE_CONTENT_SAFETY_ENDPOINT", ""),
		ContentSafetyKey:      getEnv("AZURE_CONTENT_SAFETY_KEY", ""),
		LanguageEndpoint:      getEnv("AZURE_LANGUAGE_ENDPOINT", ""),
		LanguageKey:           getEnv("AZURE_LANGUAGE_KEY", ""),
		Region:                getEnv("AZURE_REGION", ""),
	}
}

// EnvStatus reports which required provider variables are set, without
// exposing their values. Rendered by the API's config status endpoint.
func EnvStatus() (present []string, missing []string) {
	for _, key := range requiredEnvKeys {
		if os.Getenv(key) != "" {
			present = append(present, key)
		} else {
			missing = append(missing, key)
		}
	}
	return present, missing
}

// Wire builds the analysis engine from configuration. Credentials are
// allowed to be empty here; the clients report missing credentials per
// call without touching the network.
func Wire(cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	modCfg, err := config.LoadModerationConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load moderation config: %w", err)
	}

	imageNormalizer, err := moderation.NewNormalizer(modCfg.Image.MaxSeverity, modCfg.Categories.Aliases, modCfg.Categories.Strict)
	if err != nil {
		return nil, fmt.Errorf("failed to build image normalizer: %w", err)
	}
	textNormalizer, err := moderation.NewNormalizer(modCfg.Text.MaxSeverity, modCfg.Categories.Aliases, modCfg.Categories.Strict)
	if err != nil {
		return nil, fmt.Errorf("failed to build text normalizer: %w", err)
	}

	imageClient := contentsafety.NewClient(
		cfg.ContentSafetyEndpoint,
		cfg.ContentSafetyKey,
		cfg.Region,
		modCfg.Text.MaxLength,
		imageNormalizer,
		logger,
	)

	textClient, err := createTextClient(cfg, modCfg, textNormalizer, logger)
	if err != nil {
		return nil, err
	}

	fuser := engine.NewFuser(engine.Thresholds{
		Unsafe:    modCfg.Classification.UnsafeThreshold,
		Sensitive: modCfg.Classification.SensitiveThreshold,
	}, logger)

	eng := engine.New(imageClient, textClient, fuser, logger)

	logger.Info().
		Str("text_protocol", string(modCfg.Text.Protocol)).
		Int("image_max_severity", modCfg.Image.MaxSeverity).
		Bool("strict_categories", modCfg.Categories.Strict).
		Msg("analysis engine wired")

	return &Dependencies{
		Engine:     eng,
		Moderation: modCfg,
		Logger:     logger,
	}, nil
}

func createTextClient(cfg *Config, modCfg *config.ModerationConfig, normalizer *moderation.Normalizer, logger *zerolog.Logger) (moderation.TextAnalyzer, error) {
	switch modCfg.Text.Protocol {
	case config.TextProtocolJobs:
		return language.NewClient(
			cfg.LanguageEndpoint,
			cfg.LanguageKey,
			cfg.Region,
			modCfg.Text.JobKind,
			modCfg.Text.MaxLength,
			normalizer,
			logger,
		), nil
	case config.TextProtocolSync:
		return contentsafety.NewClient(
			cfg.ContentSafetyEndpoint,
			cfg.ContentSafetyKey,
			cfg.Region,
			modCfg.Text.MaxLength,
			normalizer,
			logger,
		), nil
	default:
		return nil, fmt.Errorf("unsupported text protocol: %s", modCfg.Text.Protocol)
	}
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}
