package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/paylens/paylens-api/internal/charts"
)

const defaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models"

// AssistantService translates natural-language questions about payment
// data into chart requests via the Gemini API and runs them through
// the chart engine.
type AssistantService struct {
	apiKey       string
	model        string
	endpoint     string
	httpClient   *http.Client
	chartService *ChartService
	logger       *zap.Logger
}

// AssistantOption configures the assistant service.
type AssistantOption func(*AssistantService)

// WithEndpoint overrides the Gemini API endpoint.
func WithEndpoint(endpoint string) AssistantOption {
	return func(s *AssistantService) {
		s.endpoint = endpoint
	}
}

// WithHTTPClient overrides the HTTP client used for Gemini calls.
func WithHTTPClient(client *http.Client) AssistantOption {
	return func(s *AssistantService) {
		s.httpClient = client
	}
}

// NewAssistantService creates a new assistant service.
func NewAssistantService(apiKey, model string, chartService *ChartService, log *zap.Logger, options ...AssistantOption) *AssistantService {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	if log == nil {
		log = zap.NewNop()
	}

	service := &AssistantService{
		apiKey:       apiKey,
		model:        model,
		endpoint:     defaultGeminiEndpoint,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		chartService: chartService,
		logger:       log,
	}

	for _, option := range options {
		option(service)
	}

	return service
}

// translationPrompt instructs the model to emit either a chart request
// or a refusal, as strict JSON.
const translationPrompt = `You translate questions about payment data into chart requests.

Supported resource types and their aggregations:
- transaction: by-day, by-hour, by-week, by-month, by-status, by-channel
- refund: by-day, by-week, by-month, by-status, by-type
- payout: by-day, by-week, by-month, by-status
- dispute: by-day, by-week, by-month, by-status, by-category, by-resolution

Optional filters: status, from (YYYY-MM-DD), to (YYYY-MM-DD), currency,
channel (transactions only; one of card, bank, bank_transfer, ussd, qr,
mobile_money, eft, apple_pay). Date ranges may span at most 30 days.

Respond with a single JSON object and nothing else:
{"resourceType": "...", "aggregationType": "...", "status": "", "from": "", "to": "", "currency": "", "channel": ""}

If the question cannot be answered with a chart over this data, respond:
{"error": "<one sentence explaining why>"}`

// TranslateQuestion converts a natural-language question into a chart
// request. A refusal from the model is returned as an error.
func (s *AssistantService) TranslateQuestion(ctx context.Context, question string) (charts.ChartRequest, error) {
	if s.apiKey == "" {
		return charts.ChartRequest{}, fmt.Errorf("assistant is not configured: missing Gemini API key")
	}

	prompt := translationPrompt + "\n\nQUESTION: " + question + "\n\nRespond with valid JSON only:"

	response, err := s.callGemini(ctx, prompt)
	if err != nil {
		return charts.ChartRequest{}, fmt.Errorf("translation request failed: %w", err)
	}

	req, err := parseChartRequest(response)
	if err != nil {
		s.logger.Warn("failed to parse assistant translation",
			zap.String("question", question),
			zap.Error(err))
		return charts.ChartRequest{}, err
	}

	s.logger.Debug("assistant translated question",
		zap.String("question", question),
		zap.String("resource", string(req.ResourceType)),
		zap.String("aggregation", string(req.AggregationType)))

	return req, nil
}

// ChartFromQuestion translates a question and streams the resulting
// chart generation states. Translation failures surface as a single
// terminal error state so the consumer contract stays uniform.
func (s *AssistantService) ChartFromQuestion(ctx context.Context, question, authToken string) <-chan charts.ChartGenerationState {
	req, err := s.TranslateQuestion(ctx, question)
	if err != nil {
		out := make(chan charts.ChartGenerationState, 1)
		out <- charts.ChartGenerationState{State: charts.StateError, Error: err.Error()}
		close(out)
		return out
	}

	return s.chartService.GenerateChart(ctx, req, authToken)
}

// Gemini wire types.
type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// callGemini sends a prompt to the Gemini API and returns the text of
// the first candidate.
func (s *AssistantService) callGemini(ctx context.Context, prompt string) (string, error) {
	requestURL := fmt.Sprintf("%s/%s:generateContent?key=%s", s.endpoint, s.model, s.apiKey)

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(responseBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if parsed.Error != nil {
		return "", fmt.Errorf("gemini API error %d: %s", parsed.Error.Code, parsed.Error.Message)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// parseChartRequest extracts a chart request from the model's response,
// tolerating markdown code fences around the JSON.
func parseChartRequest(response string) (charts.ChartRequest, error) {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	var refusal struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(response), &refusal); err == nil && refusal.Error != "" {
		return charts.ChartRequest{}, fmt.Errorf("assistant could not answer: %s", refusal.Error)
	}

	var req charts.ChartRequest
	if err := json.Unmarshal([]byte(response), &req); err != nil {
		return charts.ChartRequest{}, fmt.Errorf("failed to parse assistant response: %w (response: %.200s)", err, response)
	}

	if req.ResourceType == "" || req.AggregationType == "" {
		return charts.ChartRequest{}, fmt.Errorf("assistant response is missing resourceType or aggregationType")
	}

	return req, nil
}
