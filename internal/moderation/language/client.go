package language

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mediaguard/mediaguard/internal/config"
	"github.com/mediaguard/mediaguard/internal/moderation"
	"github.com/mediaguard/mediaguard/internal/models"
)

const (
	apiVersion     = "2023-04-01"
	requestTimeout = 30 * time.Second

	defaultPollInterval    = 1 * time.Second
	defaultMaxPollAttempts = 10

	subscriptionKeyHeader    = "Ocp-Apim-Subscription-Key"
	subscriptionRegionHeader = "Ocp-Apim-Subscription-Region"
	operationLocationHeader  = "Operation-Location"
)

// Client analyzes text through the language service's asynchronous job
// protocol: submit a job, then poll its operation location at a fixed
// interval until it succeeds or the bounded attempt budget runs out.
type Client struct {
	endpoint  string
	apiKey    string
	region    string
	kind      config.TextJobKind
	maxLength int

	pollInterval    time.Duration
	maxPollAttempts int

	httpClient *http.Client
	normalizer *moderation.Normalizer
	logger     *zerolog.Logger
}

func NewClient(endpoint, apiKey, region string, kind config.TextJobKind, maxLength int, normalizer *moderation.Normalizer, logger *zerolog.Logger) *Client {
	return &Client{
		endpoint:        strings.TrimSuffix(endpoint, "/"),
		apiKey:          apiKey,
		region:          region,
		kind:            kind,
		maxLength:       maxLength,
		pollInterval:    defaultPollInterval,
		maxPollAttempts: defaultMaxPollAttempts,
		httpClient:      &http.Client{Timeout: requestTimeout},
		normalizer:      normalizer,
		logger:          logger,
	}
}

type jobSubmitRequest struct {
	Kind          string        `json:"kind"`
	AnalysisInput analysisInput `json:"analysisInput"`
}

type analysisInput struct {
	Documents []jobDocumentInput `json:"documents"`
}

type jobDocumentInput struct {
	ID       string `json:"id"`
	Language string `json:"language"`
	Text     string `json:"text"`
}

type jobStatusResponse struct {
	Status  string      `json:"status"`
	Tasks   *jobTasks   `json:"tasks,omitempty"`
	Results *jobResults `json:"results,omitempty"`
}

type jobTasks struct {
	Items []jobTaskItem `json:"items"`
}

type jobTaskItem struct {
	Results *jobResults `json:"results"`
}

type jobResults struct {
	Documents []jobDocument `json:"documents"`
}

type jobDocument struct {
	Sentiment     string                        `json:"sentiment,omitempty"`
	ContentSafety []moderation.CategoryAnalysis `json:"contentSafety,omitempty"`
}

// AnalyzeText submits an analysis job for the text and polls until a
// terminal status. No partial result is ever returned from an
// incomplete poll sequence.
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

	pollURL, err := c.submit(ctx, text)
	if err != nil {
		return c.fail(result, err, now)
	}

	body, err := c.poll(ctx, pollURL)
	if err != nil {
		return c.fail(result, err, now)
	}

	risk, categories, err := c.parseJobResult(body)
	if err != nil {
		return c.fail(result, err, now)
	}

	result.Risk = risk
	result.Categories = categories
	result.Raw = string(body)
	result.Duration = time.Since(now)
	return result
}

// submit POSTs the job and returns the poll URL from the
// operation-location header.
func (c *Client) submit(ctx context.Context, text string) (string, error) {
	payload, err := json.Marshal(jobSubmitRequest{
		Kind: string(c.kind),
		AnalysisInput: analysisInput{
			Documents: []jobDocumentInput{{ID: "1", Language: "en", Text: text}},
		},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/language/analyze-text/jobs?api-version=%s", c.endpoint, apiVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: job submit returned %d", moderation.ErrNonSuccessStatus, resp.StatusCode)
	}

	pollURL := resp.Header.Get(operationLocationHeader)
	if pollURL == "" {
		return "", fmt.Errorf("%w: operation-location header", moderation.ErrMissingField)
	}
	return pollURL, nil
}

// poll GETs the operation location until status "succeeded". Any other
// terminal status, or exhausting the attempt budget, is a failure.
func (c *Client) poll(ctx context.Context, pollURL string) ([]byte, error) {
	for attempt := 1; attempt <= c.maxPollAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.pollInterval):
			}
		}

		body, status, err := c.pollOnce(ctx, pollURL)
		if err != nil {
			return nil, err
		}

		c.logger.Debug().
			Int("attempt", attempt).
			Str("status", status).
			Msg("job poll")

		switch status {
		case "succeeded":
			return body, nil
		case "failed", "cancelled", "cancelling":
			return nil, fmt.Errorf("analysis job reached terminal status %q", status)
		}
	}

	return nil, fmt.Errorf("%w: %d attempts", moderation.ErrPollTimeout, c.maxPollAttempts)
}

func (c *Client) pollOnce(ctx context.Context, pollURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pollURL, nil)
	if err != nil {
		return nil, "", err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", fmt.Errorf("%w: job poll returned %d", moderation.ErrNonSuccessStatus, resp.StatusCode)
	}

	var parsed struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, "", fmt.Errorf("%w: %v", moderation.ErrInvalidJSON, err)
	}
	if parsed.Status == "" {
		return nil, "", fmt.Errorf("%w: status", moderation.ErrMissingField)
	}

	return body, parsed.Status, nil
}

// parseJobResult extracts the scored document from a succeeded job.
// One parser per configured kind; any missing field at any nesting
// level is a hard failure, never a default-zero result.
func (c *Client) parseJobResult(body []byte) (float64, models.CategorySeverity, error) {
	var resp jobStatusResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, nil, fmt.Errorf("%w: %v", moderation.ErrInvalidJSON, err)
	}

	switch c.kind {
	case config.TextJobKindSentiment:
		return c.parseSentiment(resp)
	default:
		return c.parseContentSafety(resp)
	}
}

func (c *Client) parseContentSafety(resp jobStatusResponse) (float64, models.CategorySeverity, error) {
	if resp.Results == nil || len(resp.Results.Documents) == 0 {
		return 0, nil, fmt.Errorf("%w: results.documents", moderation.ErrMissingField)
	}

	doc := resp.Results.Documents[0]
	if doc.ContentSafety == nil {
		return 0, nil, fmt.Errorf("%w: results.documents[0].contentSafety", moderation.ErrMissingField)
	}

	categories, err := c.normalizer.ParseCategories(doc.ContentSafety)
	if err != nil {
		return 0, nil, err
	}

	risk := 0.0
	for _, v := range categories {
		if v > risk {
			risk = v
		}
	}
	return moderation.Clamp01(risk), categories, nil
}

func (c *Client) parseSentiment(resp jobStatusResponse) (float64, models.CategorySeverity, error) {
	if resp.Tasks == nil || len(resp.Tasks.Items) == 0 {
		return 0, nil, fmt.Errorf("%w: tasks.items", moderation.ErrMissingField)
	}

	// Take the first task carrying a non-empty document list.
	var doc *jobDocument
	for i := range resp.Tasks.Items {
		item := resp.Tasks.Items[i]
		if item.Results != nil && len(item.Results.Documents) > 0 {
			doc = &item.Results.Documents[0]
			break
		}
	}
	if doc == nil {
		return 0, nil, fmt.Errorf("%w: tasks.items[*].results.documents", moderation.ErrMissingField)
	}
	if doc.Sentiment == "" {
		return 0, nil, fmt.Errorf("%w: sentiment", moderation.ErrMissingField)
	}

	risk, err := moderation.SentimentRisk(doc.Sentiment)
	if err != nil {
		return 0, nil, err
	}

	return risk, models.CategorySeverity{"sentiment": risk}, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set(subscriptionKeyHeader, c.apiKey)
	if c.region != "" {
		req.Header.Set(subscriptionRegionHeader, c.region)
	}
}

func (c *Client) fail(result models.ModalityResult, err error, started time.Time) models.ModalityResult {
	c.logger.Warn().
		Err(err).
		Str("modality", result.Modality).
		Str("kind", string(c.kind)).
		Msg("language job failed")

	result.Failed = true
	result.Error = err.Error()
	result.Duration = time.Since(started)
	return result
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

var _ moderation.TextAnalyzer = (*Client)(nil)
