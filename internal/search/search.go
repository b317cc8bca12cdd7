// Package search fetches a short web-search snippet used to ground replies
// to questions about dates and current events.
package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	DefaultEndpoint = "https://serpapi.com/search"
	// MaxResults is how many organic results make it into a snippet.
	MaxResults = 3

	requestedResults = 5
	maxBodyBytes     = 1 << 20
)

// SerpAPI queries Google through SerpAPI. The zero value with an APIKey is usable.
type SerpAPI struct {
	APIKey   string
	Endpoint string
	Client   *http.Client
	Logger   *zap.Logger
}

// Search returns up to MaxResults "title: snippet" lines joined by newlines.
// It returns "" when no key is configured or anything goes wrong.
func (s *SerpAPI) Search(ctx context.Context, query string) string {
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if s.APIKey == "" || strings.TrimSpace(query) == "" {
		return ""
	}

	body, err := s.fetch(ctx, query)
	if err != nil {
		logger.Warn("search failed", zap.String("query", query), zap.String("error", s.redact(err)))
		return ""
	}
	snippet := parseResults(body)
	logger.Debug("search done", zap.String("query", query), zap.Int("bytes", len(snippet)))
	return snippet
}

func (s *SerpAPI) fetch(ctx context.Context, query string) ([]byte, error) {
	endpoint := s.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("engine", "google")
	params.Set("api_key", s.APIKey)
	params.Set("num", fmt.Sprint(requestedResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
}

// redact renders err with the API key masked; transport errors quote the
// full request URL.
func (s *SerpAPI) redact(err error) string {
	msg := strings.ReplaceAll(err.Error(), url.QueryEscape(s.APIKey), "REDACTED")
	return strings.ReplaceAll(msg, s.APIKey, "REDACTED")
}

// parseResults renders the organic results of a SerpAPI response.
func parseResults(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	var lines []string
	gjson.GetBytes(body, "organic_results").ForEach(func(_, r gjson.Result) bool {
		title := strings.TrimSpace(r.Get("title").String())
		snippet := strings.TrimSpace(r.Get("snippet").String())
		if title == "" && snippet == "" {
			return true
		}
		lines = append(lines, title+": "+snippet)
		return len(lines) < MaxResults
	})
	return strings.Join(lines, "\n")
}
