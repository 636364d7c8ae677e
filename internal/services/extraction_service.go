// internal/services/extraction_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/stagefolio/stagefolio-backend/internal/config"
)

// ExtractionService makes a single chat-completion call against an
// OpenAI-compatible endpoint to pull portfolio fields out of pasted document
// text (a bio, a press kit, a competition flyer). One request, no retries;
// failures surface to the caller.
type ExtractionService struct {
	cfg        config.ExtractionConfig
	httpClient *http.Client
}

type ExtractionRequest struct {
	Text string `json:"text" validate:"required"`
}

// ExtractedProfile is the draft the model produces; the caller reviews it
// before anything is persisted.
type ExtractedProfile struct {
	DisplayName  string   `json:"display_name,omitempty"`
	ProfileType  string   `json:"profile_type,omitempty"`
	Bio          string   `json:"bio,omitempty"`
	City         string   `json:"city,omitempty"`
	Styles       []string `json:"styles,omitempty"`
	ContactEmail string   `json:"contact_email,omitempty"`
	ContactPhone string   `json:"contact_phone,omitempty"`
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

const extractionPrompt = `Extract dancer or dance-team portfolio fields from the text below.
Respond with a single JSON object using these keys where present:
display_name, profile_type ("solo" or "team"), bio, city, styles (array of strings), contact_email, contact_phone.
Omit keys you cannot determine. Respond with JSON only.

Text:
`

func NewExtractionService(cfg config.ExtractionConfig) *ExtractionService {
	return &ExtractionService{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

func (s *ExtractionService) ExtractProfile(ctx context.Context, text string) (*ExtractedProfile, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("document text is empty")
	}
	if s.cfg.APIKey == "" {
		return nil, errors.New("extraction is not configured")
	}

	reqBody := chatCompletionRequest{
		Model: s.cfg.Model,
		Messages: []chatMessage{
			{Role: "user", Content: extractionPrompt + text},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to encode extraction request: %w", err)
	}

	url := strings.TrimRight(s.cfg.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build extraction request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("extraction request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("extraction endpoint returned status %d", resp.StatusCode)
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, fmt.Errorf("failed to decode extraction response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, errors.New("extraction response contained no choices")
	}

	return parseExtractedProfile(completion.Choices[0].Message.Content)
}

// parseExtractedProfile tolerates models that wrap the JSON in a markdown
// code fence.
func parseExtractedProfile(content string) (*ExtractedProfile, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var profile ExtractedProfile
	if err := json.Unmarshal([]byte(content), &profile); err != nil {
		return nil, fmt.Errorf("model response was not valid JSON: %w", err)
	}
	return &profile, nil
}
