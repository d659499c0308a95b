package engine

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mediaguard/mediaguard/internal/moderation"
	"github.com/mediaguard/mediaguard/internal/models"
)

// Engine orchestrates one analysis: it dispatches the requested
// modality calls concurrently, waits for both to complete or fail, and
// fuses their results. No shared mutable state crosses Analyze calls.
type Engine struct {
	imageClient moderation.ImageAnalyzer
	textClient  moderation.TextAnalyzer
	fuser       *Fuser
	logger      *zerolog.Logger
}

func New(
	imageClient moderation.ImageAnalyzer,
	textClient moderation.TextAnalyzer,
	fuser *Fuser,
	logger *zerolog.Logger,
) *Engine {
	return &Engine{
		imageClient: imageClient,
		textClient:  textClient,
		fuser:       fuser,
		logger:      logger,
	}
}

// Analyze runs the requested modalities and returns the fused result.
// Neither input present is a pre-flight failure that skips all network
// calls. Cancel ctx to abort a slow or hung provider call.
func (e *Engine) Analyze(ctx context.Context, analysisCtx models.AnalysisContext) models.AnalysisResult {
	id := analysisCtx.RequestID
	e.logger.Info().
		Str("requestID", id).
		Bool("has_image", analysisCtx.HasImage()).
		Bool("has_text", analysisCtx.HasText()).
		Msg("starting analysis")

	if !analysisCtx.HasImage() && !analysisCtx.HasText() {
		return e.fuser.Fuse(id, nil, nil)
	}

	var (
		imageResult *models.ModalityResult
		textResult  *models.ModalityResult
		wg          sync.WaitGroup
	)

	if analysisCtx.HasImage() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := e.imageClient.AnalyzeImage(ctx, analysisCtx.Image)
			imageResult = &r
		}()
	}

	if analysisCtx.HasText() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := e.textClient.AnalyzeText(ctx, analysisCtx.Text)
			textResult = &r
		}()
	}

	wg.Wait()

	result := e.fuser.Fuse(id, imageResult, textResult)

	e.logger.Info().
		Str("requestID", id).
		Bool("failed", result.Failed).
		Float64("risk", result.Risk).
		Str("classification", string(result.Classification)).
		Msg("analysis complete")
	return result
}
