package models

import (
	"time"
)

type Classification string

const (
	ClassificationSafe      Classification = "safe"
	ClassificationSensitive Classification = "sensitive"
	ClassificationUnsafe    Classification = "unsafe"
	ClassificationUnknown   Classification = "unknown"
)

const (
	ModalityImage = "image"
	ModalityText  = "text"
)

// CategorySeverity maps a canonical category name to a normalized
// risk value in [0,1].
type CategorySeverity map[string]float64

// Input message
type AnalysisRequest struct {
	RequestID   string `json:"request_id"`
	ImageBase64 string `json:"image_base64,omitempty"`
	Text        string `json:"text,omitempty"`
}

// Normalized internal object
type AnalysisContext struct {
	RequestID string    `json:"request_id" jsonschema:"required,description=Unique request identifier"`
	Image     []byte    `json:"-"`
	Text      string    `json:"text,omitempty" jsonschema:"description=Text to analyze"`
	CreatedAt time.Time `json:"created_at" jsonschema:"description=Time when the analysis context was created"`
}

// HasImage reports whether an image payload was supplied.
func (c AnalysisContext) HasImage() bool {
	return len(c.Image) > 0
}

// HasText reports whether a text payload was supplied.
func (c AnalysisContext) HasText() bool {
	return c.Text != ""
}

// One modality's output. Immutable once returned by a client; the
// fusion engine only reads it.
type ModalityResult struct {
	Modality   string           `json:"modality"`
	Failed     bool             `json:"failed"`
	Error      string           `json:"error,omitempty"`
	Risk       float64          `json:"risk"`
	Categories CategorySeverity `json:"categories,omitempty"`
	Raw        string           `json:"raw,omitempty"`
	Duration   time.Duration    `json:"duration_ns"`
}

// Final output emitted to the caller
type AnalysisResult struct {
	ID             string           `json:"id"`
	Failed         bool             `json:"failed"`
	Error          string           `json:"error,omitempty"`
	Image          *ModalityResult  `json:"image,omitempty"`
	Text           *ModalityResult  `json:"text,omitempty"`
	Risk           float64          `json:"risk"`
	RiskPercentage float64          `json:"risk_percentage"`
	Classification Classification   `json:"classification"`
	Categories     CategorySeverity `json:"categories,omitempty"`
}
