package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"

	"github.com/grinta-launcher/grinta/pkg/dispatch"
	"github.com/grinta-launcher/grinta/pkg/models"
)

const (
	// DefaultSuggestionEndpoint is DuckDuckGo's autocomplete API
	DefaultSuggestionEndpoint = "https://duckduckgo.com/ac/"

	defaultSuggestionRate = rate.Limit(5)
	suggestionBurst       = 2
	maxSuggestionBody     = 1 << 20
)

type suggestion struct {
	Phrase string `json:"phrase"`
}

// Suggestions fetches search engine autocomplete phrases
type Suggestions struct {
	client      *http.Client
	endpoint    string
	rateLimiter *rate.Limiter
}

// SuggestionOption configures a Suggestions source
type SuggestionOption func(*Suggestions)

// WithHTTPClient sets the HTTP client
func WithHTTPClient(client *http.Client) SuggestionOption {
	return func(s *Suggestions) {
		if client != nil {
			s.client = client
		}
	}
}

// WithEndpoint overrides the autocomplete endpoint
func WithEndpoint(endpoint string) SuggestionOption {
	return func(s *Suggestions) {
		if endpoint != "" {
			s.endpoint = endpoint
		}
	}
}

// WithRate sets the request rate in requests per second. Zero or less
// disables throttling.
func WithRate(perSecond float64) SuggestionOption {
	return func(s *Suggestions) {
		if perSecond <= 0 {
			s.rateLimiter = nil
			return
		}
		s.rateLimiter = rate.NewLimiter(rate.Limit(perSecond), suggestionBurst)
	}
}

// NewSuggestions creates a suggestion source
func NewSuggestions(opts ...SuggestionOption) *Suggestions {
	s := &Suggestions{
		client:      http.DefaultClient,
		endpoint:    DefaultSuggestionEndpoint,
		rateLimiter: rate.NewLimiter(defaultSuggestionRate, suggestionBurst),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Category implements dispatch.Source
func (s *Suggestions) Category() dispatch.Category {
	return dispatch.CategorySuggestions
}

// Search implements dispatch.Source with a single request bounded by ctx
func (s *Suggestions) Search(ctx context.Context, query string) ([]models.Item, error) {
	if query == "" {
		return []models.Item{}, nil
	}

	if s.rateLimiter != nil {
		if err := s.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	endpoint, err := url.Parse(s.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid suggestion endpoint: %w", err)
	}
	params := endpoint.Query()
	params.Set("q", query)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build suggestion request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("suggestion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("suggestion request failed: %s", resp.Status)
	}

	var phrases []suggestion
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxSuggestionBody)).Decode(&phrases); err != nil {
		return nil, fmt.Errorf("failed to decode suggestions: %w", err)
	}

	items := make([]models.Item, 0, len(phrases))
	for _, p := range phrases {
		if p.Phrase == "" {
			continue
		}
		items = append(items, SuggestionItem(p.Phrase))
	}
	return items, nil
}
