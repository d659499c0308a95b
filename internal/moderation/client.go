package moderation

import (
	"context"

	"github.com/mediaguard/mediaguard/internal/models"
)

//go:generate mockgen -destination=../engine/mocks/mock_moderation.go -package=mocks github.com/mediaguard/mediaguard/internal/moderation ImageAnalyzer,TextAnalyzer

// ImageAnalyzer analyzes a canonical image payload against a remote
// content-safety classifier.
// This allows mocking in tests without making real API calls.
type ImageAnalyzer interface {
	AnalyzeImage(ctx context.Context, image []byte) models.ModalityResult
}

// TextAnalyzer analyzes text against a remote classifier. The concrete
// implementation decides the protocol (synchronous call or async job).
type TextAnalyzer interface {
	AnalyzeText(ctx context.Context, text string) models.ModalityResult
}
