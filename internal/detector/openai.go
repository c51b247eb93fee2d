package detector

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider backs the contradiction/support detectors with an
// OpenAI chat model. Useful when no dedicated NLI service is deployed;
// the model is asked for a single probability, nothing more.
type OpenAIProvider struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// OpenAIConfig configures the OpenAI-backed provider
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// NewOpenAIProvider creates an OpenAI detector provider
func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &OpenAIProvider{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   model,
		timeout: timeout,
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Contradiction asks the model for P(claim contradicts evidence)
func (p *OpenAIProvider) Contradiction(ctx context.Context, claimText, evidence string) (*Verdict, error) {
	prompt := fmt.Sprintf(`Estimate the probability that the CLAIM contradicts the EVIDENCE.

CLAIM: %s
EVIDENCE: %s

Respond with JSON only: {"value": <probability 0.0-1.0>, "rationale": "<one sentence>"}
If the evidence is empty or unrelated, use a low value.`, claimText, evidenceOrNone(evidence))

	return p.ask(ctx, prompt)
}

// Support asks the model for the probability the evidence supports the claim
func (p *OpenAIProvider) Support(ctx context.Context, claimText, evidence string) (*Verdict, error) {
	prompt := fmt.Sprintf(`Estimate the probability that the EVIDENCE supports (entails) the CLAIM.

CLAIM: %s
EVIDENCE: %s

Respond with JSON only: {"value": <probability 0.0-1.0>, "rationale": "<one sentence>"}
If the evidence is empty or unrelated, use 0.5.`, claimText, evidenceOrNone(evidence))

	return p.ask(ctx, prompt)
}

func (p *OpenAIProvider) ask(ctx context.Context, prompt string) (*Verdict, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Temperature: 0,
		MaxTokens:   150,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a calibrated fact-checking scorer. Output strict JSON, no prose.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty completion")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var verdict Verdict
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &verdict); err != nil {
		return nil, fmt.Errorf("parse completion: %w", err)
	}

	if verdict.Value < 0 {
		verdict.Value = 0
	}
	if verdict.Value > 1 {
		verdict.Value = 1
	}

	return &verdict, nil
}

func evidenceOrNone(evidence string) string {
	if strings.TrimSpace(evidence) == "" {
		return "(none provided)"
	}
	return evidence
}
