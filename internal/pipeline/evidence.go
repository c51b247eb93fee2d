package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/ppiankov/thindex/internal/extract"
	"github.com/ppiankov/thindex/internal/model"
	"github.com/ppiankov/thindex/internal/util"
)

// EvidenceFetcher pulls reference text from a URL so claims can be
// checked against a live source instead of pasted evidence
type EvidenceFetcher struct {
	httpClient *http.Client
	robots     *util.RobotsChecker
	userAgent  string
	maxBytes   int64
}

// NewEvidenceFetcher creates a fetcher from HTTP configuration
func NewEvidenceFetcher(cfg model.HTTPConfig) *EvidenceFetcher {
	return &EvidenceFetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		robots:    util.NewRobotsChecker(cfg.UserAgent, cfg.Timeout),
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
	}
}

// Fetch retrieves the URL, honors robots.txt, and returns the page's
// visible text for use as evidence
func (f *EvidenceFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	allowed, _, err := f.robots.CanFetch(ctx, rawURL)
	if err == nil && !allowed {
		return "", fmt.Errorf("robots.txt disallows fetching %s", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/plain;q=0.9,*/*;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch evidence: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	text := extract.VisibleText(string(body))
	if text == "" {
		// Plain-text evidence passes through untouched
		text = string(body)
	}

	return text, nil
}
