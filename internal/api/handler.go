package api

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"github.com/emicklei/go-restful/v3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mediaguard/mediaguard/internal/api/middleware"
	"github.com/mediaguard/mediaguard/internal/input"
	"github.com/mediaguard/mediaguard/internal/models"
	"github.com/mediaguard/mediaguard/internal/setup"
)

// Analyzer runs one analysis request through the engine.
type Analyzer interface {
	Analyze(ctx context.Context, analysisCtx models.AnalysisContext) models.AnalysisResult
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type ConfigStatusResponse struct {
	Present []string `json:"present"`
	Missing []string `json:"missing"`
}

type Handler struct {
	analyzer Analyzer
	logger   *zerolog.Logger
}

func NewHandler(analyzer Analyzer, logger *zerolog.Logger) *Handler {
	return &Handler{
		analyzer: analyzer,
		logger:   logger,
	}
}

// POST /api/v1/analyze
// Body: AnalysisRequest
// Returns: AnalysisResult
func (h *Handler) Analyze(req *restful.Request, resp *restful.Response) {
	var analysisRequest models.AnalysisRequest
	if err := req.ReadEntity(&analysisRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	if analysisRequest.ImageBase64 == "" && analysisRequest.Text == "" {
		middleware.HandleError(resp, fmt.Errorf("no image or text provided"), http.StatusBadRequest)
		return
	}

	analysisCtx, err := normalize(analysisRequest)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to normalize request")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	h.logger.Info().
		Str("request_id", analysisCtx.RequestID).
		Bool("has_image", analysisCtx.HasImage()).
		Bool("has_text", analysisCtx.HasText()).
		Msg("Start analysis")

	if analysisCtx.HasImage() {
		h.logger.Debug().
			Str("request_id", analysisCtx.RequestID).
			Str("format", input.DetectFormat(analysisCtx.Image)).
			Int("bytes", len(analysisCtx.Image)).
			Msg("image payload received")
	}

	ctx := req.Request.Context()
	result := h.analyzer.Analyze(ctx, analysisCtx)

	h.logger.Info().
		Str("request_id", result.ID).
		Bool("failed", result.Failed).
		Float64("risk", result.Risk).
		Str("classification", string(result.Classification)).
		Msg("Analysis complete")

	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// POST /api/v1/analyze/upload
// Multipart form: file field "image" and/or form value "text",
// optional "request_id". Mirrors the JSON endpoint for callers that
// upload raw files instead of base64.
func (h *Handler) AnalyzeUpload(req *restful.Request, resp *restful.Response) {
	r := req.Request
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse multipart form")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	id := r.FormValue("request_id")
	if id == "" {
		id = uuid.NewString()
	}

	analysisCtx := models.AnalysisContext{
		RequestID: id,
		Text:      r.FormValue("text"),
		CreatedAt: time.Now(),
	}

	if file, _, err := r.FormFile("image"); err == nil {
		defer file.Close()
		payload, err := input.Normalize(input.Stream{Reader: file})
		if err != nil {
			middleware.HandleError(resp, err, http.StatusBadRequest)
			return
		}
		analysisCtx.Image = payload
	}

	if !analysisCtx.HasImage() && !analysisCtx.HasText() {
		middleware.HandleError(resp, fmt.Errorf("no image or text provided"), http.StatusBadRequest)
		return
	}

	result := h.analyzer.Analyze(r.Context(), analysisCtx)
	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// GET /api/v1/config/status
// Reports which provider variables are configured, names only.
func (h *Handler) ConfigStatus(req *restful.Request, resp *restful.Response) {
	present, missing := setup.EnvStatus()
	resp.WriteHeaderAndEntity(http.StatusOK, ConfigStatusResponse{
		Present: present,
		Missing: missing,
	})
}

// Health handler GET /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	healthResponse := HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
	}

	resp.WriteHeaderAndEntity(http.StatusOK, healthResponse)
}

func normalize(req models.AnalysisRequest) (models.AnalysisContext, error) {
	id := req.RequestID
	if id == "" {
		id = uuid.NewString()
	}

	analysisCtx := models.AnalysisContext{
		RequestID: id,
		Text:      req.Text,
		CreatedAt: time.Now(),
	}

	if req.ImageBase64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(req.ImageBase64)
		if err != nil {
			return models.AnalysisContext{}, fmt.Errorf("invalid image_base64: %w", err)
		}
		payload, err := input.Normalize(input.Bytes(decoded))
		if err != nil {
			return models.AnalysisContext{}, err
		}
		analysisCtx.Image = payload
	}

	return analysisCtx, nil
}
