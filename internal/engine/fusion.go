package engine

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/mediaguard/mediaguard/internal/moderation"
	"github.com/mediaguard/mediaguard/internal/models"
)

// Thresholds are the classification tier boundaries applied to the
// fused risk.
type Thresholds struct {
	Unsafe    float64
	Sensitive float64
}

// Fuser combines per-modality results into one final verdict. It only
// reads the modality results, never mutates them.
type Fuser struct {
	thresholds Thresholds
	logger     *zerolog.Logger
}

func NewFuser(thresholds Thresholds, logger *zerolog.Logger) *Fuser {
	return &Fuser{
		thresholds: thresholds,
		logger:     logger,
	}
}

// Fuse computes the final risk as the maximum over succeeded
// modalities. A failed modality never masks its sibling; when every
// requested modality failed the result is marked failed and the
// underlying errors are surfaced instead of a fabricated score.
func (f *Fuser) Fuse(id string, image, text *models.ModalityResult) models.AnalysisResult {
	result := models.AnalysisResult{
		ID:    id,
		Image: image,
		Text:  text,
	}

	if image == nil && text == nil {
		result.Failed = true
		result.Error = moderation.ErrNoInput.Error()
		result.Classification = models.ClassificationUnknown
		return result
	}

	risk := 0.0
	succeeded := 0
	var errs []string

	for _, modality := range []*models.ModalityResult{image, text} {
		if modality == nil {
			continue
		}
		if modality.Failed {
			errs = append(errs, modality.Modality+": "+modality.Error)
			continue
		}
		succeeded++
		if modality.Risk > risk {
			risk = modality.Risk
		}
		result.Categories = MergeCategories(result.Categories, modality.Categories)
	}

	if succeeded == 0 {
		result.Failed = true
		result.Error = strings.Join(errs, "; ")
		result.Classification = models.ClassificationUnknown
		f.logger.Warn().
			Str("id", id).
			Str("error", result.Error).
			Msg("all requested modalities failed")
		return result
	}

	if len(errs) > 0 {
		result.Error = strings.Join(errs, "; ")
	}

	risk = moderation.Clamp01(risk)
	result.Risk = risk
	result.RiskPercentage = moderation.Round2(risk * 100)
	result.Classification = f.classify(risk)

	f.logger.Info().
		Str("id", id).
		Float64("risk", risk).
		Str("classification", string(result.Classification)).
		Msg("fusion complete")
	return result
}

func (f *Fuser) classify(risk float64) models.Classification {
	if risk >= f.thresholds.Unsafe {
		return models.ClassificationUnsafe
	}
	if risk >= f.thresholds.Sensitive {
		return models.ClassificationSensitive
	}
	return models.ClassificationSafe
}

// MergeCategories merges two category maps taking the maximum severity
// per key, so the most dangerous signal wins. Associative and
// commutative; neither argument is mutated.
func MergeCategories(a, b models.CategorySeverity) models.CategorySeverity {
	if a == nil && b == nil {
		return nil
	}
	merged := make(models.CategorySeverity, len(a)+len(b))
	for k, v := range a {
		merged[k] = v
	}
	for k, v := range b {
		if existing, ok := merged[k]; !ok || v > existing {
			merged[k] = v
		}
	}
	return merged
}
