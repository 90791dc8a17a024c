package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grinta-launcher/grinta/pkg/dispatch"
)

func TestSuggestionsSearch(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"phrase":"golang tutorial"},{"phrase":""},{"phrase":"golang generics"}]`))
	}))
	defer server.Close()

	src := NewSuggestions(WithEndpoint(server.URL+"/ac/"), WithRate(0))
	assert.Equal(t, dispatch.CategorySuggestions, src.Category())

	items, err := src.Search(context.Background(), "golang t")
	require.NoError(t, err)

	assert.Equal(t, "golang t", gotQuery)
	require.Len(t, items, 2)
	assert.Equal(t, "golang tutorial", items[0].Label)
	assert.Equal(t, "https://duckduckgo.com/?q=golang+tutorial", items[0].Value)
	assert.Equal(t, "🔎", items[0].Icon)
	assert.Equal(t, "golang generics", items[1].Label)
}

func TestSuggestionsSearchFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"not":"a list"`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			src := NewSuggestions(WithEndpoint(server.URL), WithRate(0))
			items, err := src.Search(context.Background(), "golang")
			assert.Error(t, err)
			assert.Empty(t, items)
		})
	}
}

func TestSuggestionsSearchTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	src := NewSuggestions(WithEndpoint(server.URL), WithRate(0))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := src.Search(ctx, "golang")
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestSuggestionsEmptyQuery(t *testing.T) {
	src := NewSuggestions(WithEndpoint("http://127.0.0.1:0"))

	items, err := src.Search(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSuggestionsRateLimitHonorsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	src := NewSuggestions(WithEndpoint(server.URL), WithRate(0.001))

	// The burst allows the first requests through immediately.
	for i := 0; i < suggestionBurst; i++ {
		_, err := src.Search(context.Background(), "go")
		require.NoError(t, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := src.Search(ctx, "go")
	assert.Error(t, err)
}
