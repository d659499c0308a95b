package config

// ModerationConfig represents the complete moderation policy
// configuration.
type ModerationConfig struct {
	Classification ClassificationConfig `yaml:"classification"`
	Image          ImageConfig          `yaml:"image"`
	Text           TextConfig           `yaml:"text"`
	Categories     CategoriesConfig     `yaml:"categories"`
}

// ClassificationConfig contains the tier thresholds applied to the
// fused risk.
type ClassificationConfig struct {
	UnsafeThreshold    float64 `yaml:"unsafe_threshold"`
	SensitiveThreshold float64 `yaml:"sensitive_threshold"`
}

// ImageConfig contains the image provider's severity scale.
type ImageConfig struct {
	MaxSeverity int `yaml:"max_severity"`
}

// TextProtocol selects how the text provider is called.
type TextProtocol string

const (
	// TextProtocolSync is a single POST to the content-safety text
	// endpoint.
	TextProtocolSync TextProtocol = "sync"
	// TextProtocolJobs submits an analysis job to the language
	// endpoint and polls its operation location.
	TextProtocolJobs TextProtocol = "jobs"
)

// TextJobKind selects the analysis kind submitted on the jobs protocol.
type TextJobKind string

const (
	TextJobKindContentSafety TextJobKind = "ContentSafety"
	TextJobKindSentiment     TextJobKind = "SentimentAnalysis"
)

// TextConfig contains the text provider's protocol variant and limits.
type TextConfig struct {
	Protocol    TextProtocol `yaml:"protocol"`
	JobKind     TextJobKind  `yaml:"job_kind"`
	MaxSeverity int          `yaml:"max_severity"`
	MaxLength   int          `yaml:"max_length"`
}

// CategoriesConfig documents the canonical vocabulary and the alias
// table mapping provider names onto it. Strict mode drops categories
// outside the table instead of passing them through.
type CategoriesConfig struct {
	Canonical []string          `yaml:"canonical"`
	Aliases   map[string]string `yaml:"aliases"`
	Strict    bool              `yaml:"strict"`
}
