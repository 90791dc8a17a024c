// Package sources adapts the platform to launcher items: installed
// applications, notes, bookmarks, shortcuts, filesystem search, web
// suggestions and item execution.
package sources

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"strings"

	"github.com/grinta-launcher/grinta/pkg/models"
)

// ErrUnsupported is returned when the current platform has no adapter for
// an operation.
var ErrUnsupported = errors.New("not supported on this platform")

const (
	webSearchURL = "https://duckduckgo.com/?q="
	assistantURL = "https://chatgpt.com/?q="

	suggestionIcon = "🔎"
)

// Runner runs external commands
type Runner interface {
	// Output runs the command to completion and returns stdout and stderr
	Output(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
	// Start launches the command without waiting for it
	Start(name string, args ...string) error
}

// ExecRunner runs commands with os/exec
type ExecRunner struct{}

// Output implements Runner
func (ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return stdout.Bytes(), stderr.Bytes(), fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return stdout.Bytes(), stderr.Bytes(), fmt.Errorf("%s: %w", name, err)
	}
	return stdout.Bytes(), stderr.Bytes(), nil
}

// Start implements Runner
func (ExecRunner) Start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	// Reap the child in the background.
	go cmd.Wait()
	return nil
}

// SearchURL returns the web search address for query
func SearchURL(query string) string {
	return webSearchURL + url.QueryEscape(query)
}

// AssistantURL returns the chat assistant deep link for query
func AssistantURL(query string) string {
	return assistantURL + url.QueryEscape(query)
}

// WebSearchItem is the direct "search the web for query" item
func WebSearchItem(query string) models.Item {
	return models.NewItem(query, models.VariantWebSearch, SearchURL(query))
}

// SuggestionItem wraps a search engine suggestion
func SuggestionItem(phrase string) models.Item {
	item := models.NewItem(phrase, models.VariantWebSuggestion, SearchURL(phrase))
	item.Icon = suggestionIcon
	return item
}
