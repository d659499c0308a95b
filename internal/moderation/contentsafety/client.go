package contentsafety

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mediaguard/mediaguard/internal/moderation"
	"github.com/mediaguard/mediaguard/internal/models"
)

const (
	apiVersion     = "2023-10-01"
	requestTimeout = 30 * time.Second

	subscriptionKeyHeader    = "Ocp-Apim-Subscription-Key"
	subscriptionRegionHeader = "Ocp-Apim-Subscription-Region"
)

// requestedCategories is the fixed set asked of the text endpoint.
var requestedCategories = []string{"Hate", "SelfHarm", "Sexual", "Violence"}

// Client calls the Content Safety image and text endpoints. One POST
// per analysis, bounded timeout, no retry: a failed call yields a
// failed modality result immediately.
type Client struct {
	endpoint   string
	apiKey     string
	region     string
	maxLength  int
	httpClient *http.Client
	normalizer *moderation.Normalizer
	logger     *zerolog.Logger
}

func NewClient(endpoint, apiKey, region string, maxLength int, normalizer *moderation.Normalizer, logger *zerolog.Logger) *Client {
	return &Client{
		endpoint:   strings.TrimSuffix(endpoint, "/"),
		apiKey:     apiKey,
		region:     region,
		maxLength:  maxLength,
		httpClient: &http.Client{Timeout: requestTimeout},
		normalizer: normalizer,
		logger:     logger,
	}
}

type imageAnalyzeRequest struct {
	Image imageContent `json:"image"`
}

type imageContent struct {
	Content string `json:"content"`
}

type textAnalyzeRequest struct {
	Text       string   `json:"text"`
	Categories []string `json:"categories"`
}

// AnalyzeImage sends the canonical image payload to image:analyze and
// normalizes the response.
func (c *Client) AnalyzeImage(ctx context.Context, image []byte) models.ModalityResult {
	now := time.Now()
	result := models.ModalityResult{Modality: models.ModalityImage}

	if c.endpoint == "" || c.apiKey == "" {
		return c.fail(result, moderation.ErrMissingCredentials, now)
	}
	if len(image) == 0 {
		return c.fail(result, fmt.Errorf("empty image payload"), now)
	}

	payload, err := json.Marshal(imageAnalyzeRequest{
		Image: imageContent{Content: base64.StdEncoding.EncodeToString(image)},
	})
	if err != nil {
		return c.fail(result, err, now)
	}

	url := fmt.Sprintf("%s/contentsafety/image:analyze?api-version=%s", c.endpoint, apiVersion)
	return c.analyze(ctx, url, payload, result, now)
}

// AnalyzeText sends text to text:analyze. Empty text after trimming is
// a hard failure; longer text is truncated to the configured maximum
// before submission.
func (c *Client) AnalyzeText(ctx context.Context, text string) models.ModalityResult {
	now := time.Now()
	result := models.ModalityResult{Modality: models.ModalityText}

	if c.endpoint == "" || c.apiKey == "" {
		return c.fail(result, moderation.ErrMissingCredentials, now)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return c.fail(result, moderation.ErrEmptyText, now)
	}
	text = truncate(text, c.maxLength)

	payload, err := json.Marshal(textAnalyzeRequest{
		Text:       text,
		Categories: requestedCategories,
	})
	if err != nil {
		return c.fail(result, err, now)
	}

	url := fmt.Sprintf("%s/contentsafety/text:analyze?api-version=%s", c.endpoint, apiVersion)
	return c.analyze(ctx, url, payload, result, now)
}

func (c *Client) analyze(ctx context.Context, url string, payload []byte, result models.ModalityResult, started time.Time) models.ModalityResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return c.fail(result, err, started)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(subscriptionKeyHeader, c.apiKey)
	if c.region != "" {
		req.Header.Set(subscriptionRegionHeader, c.region)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fail(result, err, started)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.fail(result, err, started)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.fail(result, fmt.Errorf("%w: %d", moderation.ErrNonSuccessStatus, resp.StatusCode), started)
	}

	categories, err := c.normalizer.ParseBody(body)
	if err != nil {
		return c.fail(result, err, started)
	}

	result.Categories = categories
	result.Risk = maxRisk(categories)
	result.Raw = string(body)
	result.Duration = time.Since(started)
	return result
}

func (c *Client) fail(result models.ModalityResult, err error, started time.Time) models.ModalityResult {
	c.logger.Warn().
		Err(err).
		Str("modality", result.Modality).
		Msg("content safety call failed")

	result.Failed = true
	result.Error = err.Error()
	result.Duration = time.Since(started)
	return result
}

func maxRisk(categories models.CategorySeverity) float64 {
	risk := 0.0
	for _, v := range categories {
		if v > risk {
			risk = v
		}
	}
	return moderation.Clamp01(risk)
}

func truncate(text string, maxLength int) string {
	if maxLength <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	return string(runes[:maxLength])
}

var (
	_ moderation.ImageAnalyzer = (*Client)(nil)
	_ moderation.TextAnalyzer  = (*Client)(nil)
)
