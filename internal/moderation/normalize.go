package moderation

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/mediaguard/mediaguard/internal/models"
)

// CategoriesAnalysisResponse is the wire shape both content-safety
// endpoints return for category scoring.
type CategoriesAnalysisResponse struct {
	CategoriesAnalysis []CategoryAnalysis `json:"categoriesAnalysis"`
}

// CategoryAnalysis is one scored category. Severity stays raw so a
// non-numeric value is detected instead of silently zeroed by the
// decoder.
type CategoryAnalysis struct {
	Category string          `json:"category"`
	Severity json.RawMessage `json:"severity"`
}

// Normalizer validates a provider's category response and rescales its
// severity units into the canonical [0,1] risk unit. Validation is
// all-or-nothing: one garbled item invalidates the whole response.
type Normalizer struct {
	maxSeverity float64
	aliases     map[string]string
	strict      bool
}

// NewNormalizer builds a normalizer for a provider whose severities
// live on the integer scale [0,maxSeverity]. Aliases map folded
// provider category names onto the canonical vocabulary; in strict
// mode categories outside the alias table are dropped, otherwise they
// are kept under their folded key.
func NewNormalizer(maxSeverity int, aliases map[string]string, strict bool) (*Normalizer, error) {
	if maxSeverity <= 0 {
		return nil, fmt.Errorf("max severity must be positive, got %d", maxSeverity)
	}

	folded := make(map[string]string, len(aliases))
	for name, canonical := range aliases {
		folded[FoldCategory(name)] = canonical
	}

	return &Normalizer{
		maxSeverity: float64(maxSeverity),
		aliases:     folded,
		strict:      strict,
	}, nil
}

// ParseBody decodes a full response body and normalizes its categories.
func (n *Normalizer) ParseBody(body []byte) (models.CategorySeverity, error) {
	var resp CategoriesAnalysisResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if resp.CategoriesAnalysis == nil {
		return nil, fmt.Errorf("%w: categoriesAnalysis", ErrMissingField)
	}
	return n.ParseCategories(resp.CategoriesAnalysis)
}

// ParseCategories validates every item and returns the normalized
// category map. Pure function of its input.
func (n *Normalizer) ParseCategories(items []CategoryAnalysis) (models.CategorySeverity, error) {
	categories := make(models.CategorySeverity, len(items))
	parsed := 0

	for _, item := range items {
		if item.Category == "" {
			return nil, fmt.Errorf("%w: category", ErrMissingField)
		}
		if len(item.Severity) == 0 {
			return nil, fmt.Errorf("%w: severity for category %q", ErrMissingField, item.Category)
		}

		var severity float64
		if err := json.Unmarshal(item.Severity, &severity); err != nil {
			return nil, fmt.Errorf("%w: category %q got %s", ErrNonNumericSeverity, item.Category, item.Severity)
		}
		if severity < 0 || severity > n.maxSeverity {
			return nil, fmt.Errorf("%w: category %q severity %g outside [0,%g]",
				ErrOutOfRangeSeverity, item.Category, severity, n.maxSeverity)
		}
		parsed++

		key, known := n.canonicalKey(item.Category)
		if !known && n.strict {
			continue
		}

		risk := Round3(severity / n.maxSeverity)
		// Duplicate keys keep the most dangerous signal.
		if existing, ok := categories[key]; !ok || risk > existing {
			categories[key] = risk
		}
	}

	if parsed == 0 {
		return nil, ErrEmptyCategoryList
	}

	return categories, nil
}

func (n *Normalizer) canonicalKey(category string) (string, bool) {
	folded := FoldCategory(category)
	if canonical, ok := n.aliases[folded]; ok {
		return canonical, true
	}
	return folded, false
}

// FoldCategory lowercases a provider category name and strips all
// whitespace, the canonical key form used for lookup.
func FoldCategory(category string) string {
	folded := strings.ToLower(strings.TrimSpace(category))
	return strings.Join(strings.Fields(folded), "")
}

// SentimentRisk maps a sentiment label from the language provider onto
// the canonical risk scale.
func SentimentRisk(sentiment string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(sentiment)) {
	case "negative":
		return 0.6, nil
	case "mixed":
		return 0.4, nil
	case "neutral", "positive":
		return 0.0, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSentiment, sentiment)
	}
}

// Round3 rounds to three decimals, the precision kept for normalized
// per-category risks.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// Round2 rounds to two decimals, used for the percentage view.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Clamp01 clamps a risk value into [0,1].
func Clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
