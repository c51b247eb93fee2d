package detector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ppiankov/thindex/internal/util"
	"github.com/ppiankov/thindex/internal/worker"
)

// HTTPProvider talks to a detector service (the NLI/embedding model
// server) over HTTP. Expected endpoints:
//
//	POST {base}/v1/score/contradiction
//	POST {base}/v1/score/support
//
// with request {"claim_text": ..., "evidence": ...} and response
// {"value": 0.0-1.0, "rationale": "..."}.
type HTTPProvider struct {
	baseURL    string
	httpClient *http.Client
	limiter    *worker.Limiter
}

// HTTPConfig configures the HTTP detector provider
type HTTPConfig struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	HTTPProxy         string
	HTTPSProxy        string
	NoProxy           string
}

type scoreRequest struct {
	ClaimText string `json:"claim_text"`
	Evidence  string `json:"evidence,omitempty"`
}

type scoreError struct {
	Error string `json:"error"`
}

// NewHTTPProvider creates an HTTP detector provider
func NewHTTPProvider(cfg HTTPConfig) (*HTTPProvider, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("detector base URL is required")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}

	return &HTTPProvider{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
			},
		},
		limiter: worker.NewLimiter(rps, cfg.Burst),
	}, nil
}

// Name returns the provider name
func (p *HTTPProvider) Name() string {
	return "http"
}

// Contradiction scores the claim against the contradiction endpoint
func (p *HTTPProvider) Contradiction(ctx context.Context, claimText, evidence string) (*Verdict, error) {
	return p.score(ctx, "contradiction", claimText, evidence)
}

// Support scores the claim against the support endpoint
func (p *HTTPProvider) Support(ctx context.Context, claimText, evidence string) (*Verdict, error) {
	return p.score(ctx, "support", claimText, evidence)
}

func (p *HTTPProvider) score(ctx context.Context, endpoint, claimText, evidence string) (*Verdict, error) {
	url := p.baseURL + "/v1/score/" + endpoint

	if err := p.limiter.Wait(ctx, url); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	payload, err := json.Marshal(scoreRequest{
		ClaimText: claimText,
		Evidence:  evidence,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("detector request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr scoreError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("detector error (%d): %s", resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("detector status %d", resp.StatusCode)
	}

	var verdict Verdict
	if err := json.Unmarshal(body, &verdict); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	if verdict.Value < 0 || verdict.Value > 1 {
		return nil, fmt.Errorf("detector value out of range: %f", verdict.Value)
	}

	return &verdict, nil
}
