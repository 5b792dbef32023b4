package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	config "github.com/smbsocial/postpilot/configs"
	"github.com/smbsocial/postpilot/internal/transfer"
)

// Scorer is the external scoring oracle consumed by the quality gate.
// Implementations return a structurally valid verdict or an error; the gate
// treats every error as retryable.
type Scorer interface {
	Score(ctx context.Context, req *transfer.ScoringRequest) (*transfer.QAVerdict, error)
}

type claudeScorer struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewClaudeScorer(cfg config.Config) Scorer {
	return &claudeScorer{
		apiKey:  cfg.AnthropicAPIKey,
		baseURL: cfg.AnthropicBaseURL,
		model:   cfg.AnthropicModel,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

const scorerSystemPrompt = `You are a senior social media content QA specialist for local HVAC businesses.
You review posts and score them on a strict rubric. You have extremely high standards.
Generic, AI-sounding, or weak content always fails your review.

Your scoring rubric:

%s

You MUST respond with valid JSON only — no markdown, no explanation outside the JSON.`

const scorerUserPrompt = `Review this social media post for %s, an HVAC contractor in %s.

Platform: %s
Company: %s
City: %s

--- POST TEXT ---
%s
--- END POST ---

Score this post on all 6 dimensions. If the average is below 7.0, write an improved version.

Respond with ONLY this JSON structure (no markdown fences):
{
  "scores": {
    "hook_strength": <1-10>,
    "local_specificity": <1-10>,
    "value_delivery": <1-10>,
    "cta_clarity": <1-10>,
    "platform_fit": <1-10>,
    "authenticity": <1-10>
  },
  "average": <decimal>,
  "verdict": "APPROVED" or "REWRITE",
  "issues": ["issue 1", "issue 2"],
  "improved_version": "<rewritten post text, or empty string if APPROVED>"
}`

func (s *claudeScorer) Score(ctx context.Context, req *transfer.ScoringRequest) (*transfer.QAVerdict, error) {
	payload := map[string]any{
		"model":      s.model,
		"max_tokens": 1200,
		"system":     fmt.Sprintf(scorerSystemPrompt, req.Rubric),
		"messages": []map[string]string{
			{
				"role": "user",
				"content": fmt.Sprintf(scorerUserPrompt,
					req.CompanyName, req.City, PlatformLabel(req.Platform), req.CompanyName, req.City, req.PostText),
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("x-api-key", s.apiKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scoring call returned status %d: %s", resp.StatusCode, respBody)
	}

	var envelope struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("error parsing scoring response: %w", err)
	}
	if len(envelope.Content) == 0 {
		return nil, fmt.Errorf("scoring response has no content")
	}

	return ParseVerdict(envelope.Content[0].Text)
}

var (
	fenceOpen  = regexp.MustCompile("^```(?:json)?\n?")
	fenceClose = regexp.MustCompile("\n?```$")
)

// ParseVerdict parses the oracle's JSON text into a QAVerdict, stripping
// markdown fences the model sometimes wraps it in, and validates the six
// dimension scores are present and in range. The oracle-supplied average and
// verdict are carried as-is; the gate recomputes both.
func ParseVerdict(raw string) (*transfer.QAVerdict, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = fenceOpen.ReplaceAllString(raw, "")
		raw = fenceClose.ReplaceAllString(raw, "")
	}

	var verdict transfer.QAVerdict
	if err := json.Unmarshal([]byte(raw), &verdict); err != nil {
		return nil, fmt.Errorf("error parsing verdict: %w", err)
	}

	for _, score := range verdict.Scores.Values() {
		if score < 1 || score > 10 {
			return nil, fmt.Errorf("dimension score %d out of range", score)
		}
	}
	return &verdict, nil
}
