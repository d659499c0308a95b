package engine

import (
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mediaguard/mediaguard/internal/models"
)

func testLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func defaultThresholds() Thresholds {
	return Thresholds{Unsafe: 0.7, Sensitive: 0.4}
}

func TestFuse_ImageOnly(t *testing.T) {
	fuser := NewFuser(defaultThresholds(), testLogger())

	// Severity 3 on a 0-6 scale normalizes to 0.5.
	image := &models.ModalityResult{
		Modality:   models.ModalityImage,
		Risk:       0.5,
		Categories: models.CategorySeverity{"violence": 0.5},
	}

	result := fuser.Fuse("test-001", image, nil)

	if result.Failed {
		t.Fatalf("unexpected failure: %s", result.Error)
	}
	if result.Risk != 0.5 {
		t.Errorf("risk = %v, want 0.5", result.Risk)
	}
	if result.RiskPercentage != 50 {
		t.Errorf("risk_percentage = %v, want 50", result.RiskPercentage)
	}
	if result.Classification != models.ClassificationSensitive {
		t.Errorf("classification = %s, want sensitive", result.Classification)
	}
}

func TestFuse_NegativeSentimentTextOnly(t *testing.T) {
	fuser := NewFuser(defaultThresholds(), testLogger())

	text := &models.ModalityResult{
		Modality:   models.ModalityText,
		Risk:       0.6,
		Categories: models.CategorySeverity{"sentiment": 0.6},
	}

	result := fuser.Fuse("test-002", nil, text)

	if result.Risk != 0.6 {
		t.Errorf("risk = %v, want 0.6", result.Risk)
	}
	// 0.6 sits inside the [0.4,0.7) sensitive band.
	if result.Classification != models.ClassificationSensitive {
		t.Errorf("classification = %s, want sensitive", result.Classification)
	}
}

func TestFuse_NoInput(t *testing.T) {
	fuser := NewFuser(defaultThresholds(), testLogger())

	result := fuser.Fuse("test-003", nil, nil)

	if !result.Failed {
		t.Error("expected top-level failure for missing input")
	}
	if !strings.Contains(result.Error, "no image or text") {
		t.Errorf("error %q does not mention absent input", result.Error)
	}
	if result.Classification != models.ClassificationUnknown {
		t.Errorf("classification = %s, want unknown", result.Classification)
	}
}

func TestFuse_MaxAcrossModalities(t *testing.T) {
	fuser := NewFuser(defaultThresholds(), testLogger())

	image := &models.ModalityResult{Modality: models.ModalityImage, Risk: 0.333}
	text := &models.ModalityResult{Modality: models.ModalityText, Risk: 0.8}

	result := fuser.Fuse("test-004", image, text)

	if result.Risk != 0.8 {
		t.Errorf("risk = %v, want max 0.8", result.Risk)
	}
	if result.Classification != models.ClassificationUnsafe {
		t.Errorf("classification = %s, want unsafe", result.Classification)
	}
}

func TestFuse_PartialFailureDegradesGracefully(t *testing.T) {
	fuser := NewFuser(defaultThresholds(), testLogger())

	image := &models.ModalityResult{Modality: models.ModalityImage, Risk: 0.5}
	text := &models.ModalityResult{
		Modality: models.ModalityText,
		Failed:   true,
		Error:    "analysis job did not complete within the poll budget: 10 attempts",
	}

	result := fuser.Fuse("test-005", image, text)

	if result.Failed {
		t.Error("one failed modality must not fail the whole analysis")
	}
	if result.Risk != 0.5 {
		t.Errorf("risk = %v, want the surviving modality's 0.5", result.Risk)
	}
	if !strings.Contains(result.Error, "text:") {
		t.Errorf("error %q should surface the failed modality", result.Error)
	}
}

func TestFuse_AllModalitiesFailed(t *testing.T) {
	fuser := NewFuser(defaultThresholds(), testLogger())

	image := &models.ModalityResult{Modality: models.ModalityImage, Failed: true, Error: "missing credentials"}
	text := &models.ModalityResult{Modality: models.ModalityText, Failed: true, Error: "provider returned non-success status: 500"}

	result := fuser.Fuse("test-006", image, text)

	if !result.Failed {
		t.Error("expected failure when every requested modality failed")
	}
	if result.Risk != 0 {
		t.Errorf("risk = %v, want 0", result.Risk)
	}
	if result.Classification != models.ClassificationUnknown {
		t.Errorf("classification = %s, want unknown", result.Classification)
	}
	if !strings.Contains(result.Error, "image:") || !strings.Contains(result.Error, "text:") {
		t.Errorf("error %q should carry both modality errors", result.Error)
	}
}

func TestFuse_ClassificationBoundaries(t *testing.T) {
	fuser := NewFuser(defaultThresholds(), testLogger())

	tests := []struct {
		risk float64
		want models.Classification
	}{
		{0.0, models.ClassificationSafe},
		{0.39, models.ClassificationSafe},
		{0.4, models.ClassificationSensitive},
		{0.69, models.ClassificationSensitive},
		{0.7, models.ClassificationUnsafe},
		{1.0, models.ClassificationUnsafe},
	}

	for _, tt := range tests {
		image := &models.ModalityResult{Modality: models.ModalityImage, Risk: tt.risk}
		result := fuser.Fuse("test", image, nil)
		if result.Classification != tt.want {
			t.Errorf("risk %v classified as %s, want %s", tt.risk, result.Classification, tt.want)
		}
	}
}

func TestFuse_CategoryMergeTakesMax(t *testing.T) {
	fuser := NewFuser(defaultThresholds(), testLogger())

	image := &models.ModalityResult{
		Modality:   models.ModalityImage,
		Risk:       0.5,
		Categories: models.CategorySeverity{"violence": 0.5, "hate": 0.2},
	}
	text := &models.ModalityResult{
		Modality:   models.ModalityText,
		Risk:       0.333,
		Categories: models.CategorySeverity{"violence": 0.333, "sexual": 0.167},
	}

	result := fuser.Fuse("test-007", image, text)

	expected := models.CategorySeverity{"violence": 0.5, "hate": 0.2, "sexual": 0.167}
	if !reflect.DeepEqual(result.Categories, expected) {
		t.Errorf("categories = %v, want %v", result.Categories, expected)
	}
}

func TestMergeCategories_AssociativeCommutative(t *testing.T) {
	a := models.CategorySeverity{"a": 0.2}
	b := models.CategorySeverity{"a": 0.5, "b": 0.1}

	ab := MergeCategories(a, b)
	ba := MergeCategories(b, a)

	expected := models.CategorySeverity{"a": 0.5, "b": 0.1}
	if !reflect.DeepEqual(ab, expected) {
		t.Errorf("MergeCategories(a,b) = %v, want %v", ab, expected)
	}
	if !reflect.DeepEqual(ab, ba) {
		t.Errorf("merge not commutative: %v vs %v", ab, ba)
	}

	c := models.CategorySeverity{"b": 0.9}
	left := MergeCategories(MergeCategories(a, b), c)
	right := MergeCategories(a, MergeCategories(b, c))
	if !reflect.DeepEqual(left, right) {
		t.Errorf("merge not associative: %v vs %v", left, right)
	}
}

func TestMergeCategories_DoesNotMutateArguments(t *testing.T) {
	a := models.CategorySeverity{"violence": 0.2}
	b := models.CategorySeverity{"violence": 0.8}

	MergeCategories(a, b)

	if a["violence"] != 0.2 || b["violence"] != 0.8 {
		t.Error("MergeCategories mutated an argument")
	}
}
