package moderation

import (
	"errors"
	"reflect"
	"testing"
)

func testAliases() map[string]string {
	return map[string]string{
		"violence":  "violence",
		"sexual":    "sexual",
		"selfharm":  "self_harm",
		"self_harm": "self_harm",
		"self-harm": "self_harm",
		"hate":      "hate",
	}
}

func newTestNormalizer(t *testing.T, maxSeverity int, strict bool) *Normalizer {
	t.Helper()
	n, err := NewNormalizer(maxSeverity, testAliases(), strict)
	if err != nil {
		t.Fatalf("NewNormalizer() failed: %v", err)
	}
	return n
}

func TestParseBody_Success(t *testing.T) {
	n := newTestNormalizer(t, 6, false)

	body := []byte(`{"categoriesAnalysis":[
		{"category":"Violence","severity":3},
		{"category":"SelfHarm","severity":6},
		{"category":"Hate","severity":0}
	]}`)

	categories, err := n.ParseBody(body)
	if err != nil {
		t.Fatalf("ParseBody() failed: %v", err)
	}

	expected := map[string]float64{
		"violence":  0.5,
		"self_harm": 1.0,
		"hate":      0.0,
	}
	for key, want := range expected {
		if got, ok := categories[key]; !ok || got != want {
			t.Errorf("category %q = %v, want %v", key, got, want)
		}
	}
}

func TestParseBody_NonNumericSeverity(t *testing.T) {
	n := newTestNormalizer(t, 6, false)

	body := []byte(`{"categoriesAnalysis":[{"category":"Violence","severity":"high"}]}`)

	_, err := n.ParseBody(body)
	if !errors.Is(err, ErrNonNumericSeverity) {
		t.Errorf("expected ErrNonNumericSeverity, got %v", err)
	}
}

func TestParseBody_OutOfRangeSeverity(t *testing.T) {
	n := newTestNormalizer(t, 4, false)

	tests := []struct {
		name string
		body string
	}{
		{"above max", `{"categoriesAnalysis":[{"category":"Violence","severity":7}]}`},
		{"negative", `{"categoriesAnalysis":[{"category":"Violence","severity":-1}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.ParseBody([]byte(tt.body))
			if !errors.Is(err, ErrOutOfRangeSeverity) {
				t.Errorf("expected ErrOutOfRangeSeverity, got %v", err)
			}
		})
	}
}

func TestParseBody_OneBadItemRejectsAll(t *testing.T) {
	n := newTestNormalizer(t, 6, false)

	// A single garbled item must invalidate the whole response, not be
	// skipped.
	body := []byte(`{"categoriesAnalysis":[
		{"category":"Violence","severity":2},
		{"category":"Hate","severity":"broken"}
	]}`)

	if _, err := n.ParseBody(body); err == nil {
		t.Error("expected hard failure, got nil")
	}
}

func TestParseBody_EmptyCategoryList(t *testing.T) {
	n := newTestNormalizer(t, 6, false)

	_, err := n.ParseBody([]byte(`{"categoriesAnalysis":[]}`))
	if !errors.Is(err, ErrEmptyCategoryList) {
		t.Errorf("expected ErrEmptyCategoryList, got %v", err)
	}
}

func TestParseBody_MissingField(t *testing.T) {
	n := newTestNormalizer(t, 6, false)

	_, err := n.ParseBody([]byte(`{"other":true}`))
	if !errors.Is(err, ErrMissingField) {
		t.Errorf("expected ErrMissingField, got %v", err)
	}
}

func TestParseBody_InvalidJSON(t *testing.T) {
	n := newTestNormalizer(t, 6, false)

	_, err := n.ParseBody([]byte(`not json`))
	if !errors.Is(err, ErrInvalidJSON) {
		t.Errorf("expected ErrInvalidJSON, got %v", err)
	}
}

func TestParseCategories_UnknownCategory(t *testing.T) {
	body := []byte(`{"categoriesAnalysis":[
		{"category":"Violence","severity":3},
		{"category":"Drugs","severity":6}
	]}`)

	// Lenient mode keeps the folded key.
	lenient := newTestNormalizer(t, 6, false)
	categories, err := lenient.ParseBody(body)
	if err != nil {
		t.Fatalf("ParseBody() failed: %v", err)
	}
	if got := categories["drugs"]; got != 1.0 {
		t.Errorf("lenient drugs = %v, want 1.0", got)
	}

	// Strict mode drops it but keeps the known category.
	strict := newTestNormalizer(t, 6, true)
	categories, err = strict.ParseBody(body)
	if err != nil {
		t.Fatalf("ParseBody() failed: %v", err)
	}
	if _, ok := categories["drugs"]; ok {
		t.Error("strict mode kept unknown category")
	}
	if got := categories["violence"]; got != 0.5 {
		t.Errorf("strict violence = %v, want 0.5", got)
	}
}

func TestParseCategories_CaseFoldingAndAliases(t *testing.T) {
	n := newTestNormalizer(t, 6, false)

	body := []byte(`{"categoriesAnalysis":[
		{"category":" Self Harm ","severity":3},
		{"category":"SELFHARM","severity":6}
	]}`)

	categories, err := n.ParseBody(body)
	if err != nil {
		t.Fatalf("ParseBody() failed: %v", err)
	}

	// Both spellings fold onto the canonical key; the higher risk wins.
	if got := categories["self_harm"]; got != 1.0 {
		t.Errorf("self_harm = %v, want 1.0", got)
	}
	if len(categories) != 1 {
		t.Errorf("expected 1 category, got %d: %v", len(categories), categories)
	}
}

func TestParseCategories_Idempotent(t *testing.T) {
	n := newTestNormalizer(t, 6, false)
	body := []byte(`{"categoriesAnalysis":[{"category":"Violence","severity":4},{"category":"Hate","severity":1}]}`)

	first, err := n.ParseBody(body)
	if err != nil {
		t.Fatalf("ParseBody() failed: %v", err)
	}
	second, err := n.ParseBody(body)
	if err != nil {
		t.Fatalf("ParseBody() failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("normalization not idempotent: %v vs %v", first, second)
	}
}

func TestNormalization_RoundTrip(t *testing.T) {
	const maxSeverity = 6
	n := newTestNormalizer(t, maxSeverity, false)

	for severity := 0; severity <= maxSeverity; severity++ {
		categories, err := n.ParseCategories([]CategoryAnalysis{
			{Category: "Violence", Severity: []byte{byte('0' + severity)}},
		})
		if err != nil {
			t.Fatalf("ParseCategories(severity=%d) failed: %v", severity, err)
		}

		risk := categories["violence"]
		if risk < 0 || risk > 1 {
			t.Errorf("risk %v outside [0,1]", risk)
		}

		// Denormalizing recovers the severity within rounding tolerance.
		recovered := risk * maxSeverity
		if diff := recovered - float64(severity); diff > 0.01 || diff < -0.01 {
			t.Errorf("severity %d round-tripped to %v", severity, recovered)
		}
	}
}

func TestSentimentRisk(t *testing.T) {
	tests := []struct {
		sentiment string
		want      float64
		wantErr   bool
	}{
		{"negative", 0.6, false},
		{"mixed", 0.4, false},
		{"neutral", 0.0, false},
		{"positive", 0.0, false},
		{"Negative", 0.6, false},
		{"furious", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.sentiment, func(t *testing.T) {
			got, err := SentimentRisk(tt.sentiment)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownSentiment) {
					t.Errorf("expected ErrUnknownSentiment, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SentimentRisk(%q) failed: %v", tt.sentiment, err)
			}
			if got != tt.want {
				t.Errorf("SentimentRisk(%q) = %v, want %v", tt.sentiment, got, tt.want)
			}
		})
	}
}

func TestFoldCategory(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Violence", "violence"},
		{" Self Harm ", "selfharm"},
		{"HATE", "hate"},
		{"self_harm", "self_harm"},
	}

	for _, tt := range tests {
		if got := FoldCategory(tt.in); got != tt.want {
			t.Errorf("FoldCategory(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewNormalizer_InvalidScale(t *testing.T) {
	if _, err := NewNormalizer(0, nil, false); err == nil {
		t.Error("expected error for zero max severity")
	}
}
