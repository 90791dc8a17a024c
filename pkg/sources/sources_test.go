package sources

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grinta-launcher/grinta/pkg/models"
)

type runResult struct {
	stdout string
	stderr string
	err    error
}

// fakeRunner answers Output calls by command name and records Start calls
type fakeRunner struct {
	mu      sync.Mutex
	outputs map[string][]runResult // consumed in order, last one repeats
	calls   [][]string
	started [][]string
	onStart error
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{outputs: map[string][]runResult{}}
}

func (f *fakeRunner) respond(name string, results ...runResult) {
	f.outputs[name] = append(f.outputs[name], results...)
}

func (f *fakeRunner) Output(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, append([]string{name}, args...))
	queue := f.outputs[name]
	if len(queue) == 0 {
		return nil, nil, assert.AnError
	}
	r := queue[0]
	if len(queue) > 1 {
		f.outputs[name] = queue[1:]
	}
	return []byte(r.stdout), []byte(r.stderr), r.err
}

func (f *fakeRunner) Start(name string, args ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started = append(f.started, append([]string{name}, args...))
	return f.onStart
}

func (f *fakeRunner) startedCommands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.started {
		out = append(out, strings.Join(c, " "))
	}
	return out
}

func TestWebSearchItem(t *testing.T) {
	item := WebSearchItem("rust programming")

	assert.Equal(t, "rust programming", item.Label)
	assert.Equal(t, "https://duckduckgo.com/?q=rust+programming", item.Value)
	assert.Equal(t, models.VariantWebSearch, item.Variant)
	assert.Equal(t, "🔗", item.Icon)
}

func TestSuggestionItem(t *testing.T) {
	item := SuggestionItem("test & query")

	assert.Equal(t, "test & query", item.Label)
	assert.Equal(t, "https://duckduckgo.com/?q=test+%26+query", item.Value)
	assert.Equal(t, "🔎", item.Icon)
	assert.Equal(t, models.KindWebSuggestion, item.Kind())
	assert.Equal(t, models.HandlerURL, item.Handler())
}

func TestAssistantURL(t *testing.T) {
	assert.Equal(t, "https://chatgpt.com/?q=what+is+go%3F", AssistantURL("what is go?"))
	assert.Equal(t, "https://chatgpt.com/?q=", AssistantURL(""))
}
