package mcpadapter

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mediaguard/mediaguard/internal/api"
	"github.com/mediaguard/mediaguard/internal/models"
)

// AnalyzeInput is the MCP tool input schema (matches HTTP API field names).
type AnalyzeInput struct {
	RequestID   string `json:"request_id,omitempty" jsonschema:"unique request identifier, generated when omitted"`
	ImageBase64 string `json:"image_base64,omitempty" jsonschema:"base64-encoded image payload to analyze"`
	Text        string `json:"text,omitempty" jsonschema:"text to analyze for safety risk"`
}

// AnalyzeTextInput is the MCP tool input schema for text-only analysis.
type AnalyzeTextInput struct {
	RequestID string `json:"request_id,omitempty" jsonschema:"unique request identifier, generated when omitted"`
	Text      string `json:"text" jsonschema:"text to analyze for safety risk"`
}

// NewAnalyzeHandler returns a tool handler that uses the given
// analyzer. Pass the returned function to mcp.AddTool.
func NewAnalyzeHandler(analyzer api.Analyzer) func(context.Context, *mcp.CallToolRequest, AnalyzeInput) (*mcp.CallToolResult, models.AnalysisResult, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeInput) (*mcp.CallToolResult, models.AnalysisResult, error) {
		return AnalyzeContent(ctx, analyzer, req, input)
	}
}

// NewAnalyzeTextHandler returns a text-only tool handler.
func NewAnalyzeTextHandler(analyzer api.Analyzer) func(context.Context, *mcp.CallToolRequest, AnalyzeTextInput) (*mcp.CallToolResult, models.AnalysisResult, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeTextInput) (*mcp.CallToolResult, models.AnalysisResult, error) {
		return AnalyzeContent(ctx, analyzer, req, AnalyzeInput{
			RequestID: input.RequestID,
			Text:      input.Text,
		})
	}
}

// AnalyzeContent runs the analysis pipeline and returns the result.
func AnalyzeContent(
	ctx context.Context,
	analyzer api.Analyzer,
	req *mcp.CallToolRequest,
	input AnalyzeInput,
) (*mcp.CallToolResult, models.AnalysisResult, error) {
	id := input.RequestID
	if id == "" {
		id = uuid.NewString()
	}

	analysisCtx := models.AnalysisContext{
		RequestID: id,
		Text:      input.Text,
		CreatedAt: time.Now(),
	}

	if input.ImageBase64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(input.ImageBase64)
		if err != nil {
			return nil, models.AnalysisResult{}, fmt.Errorf("invalid image_base64: %w", err)
		}
		analysisCtx.Image = decoded
	}

	result := analyzer.Analyze(ctx, analysisCtx)
	return nil, result, nil
}
