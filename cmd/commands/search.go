package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/grinta-launcher/grinta/internal/cli"
	"github.com/grinta-launcher/grinta/pkg/models"
	"github.com/grinta-launcher/grinta/pkg/search"
	"github.com/grinta-launcher/grinta/pkg/sources"
)

// SearchResultOutput is the json and yaml document of a search
type SearchResultOutput struct {
	Query   string             `json:"query" yaml:"query"`
	Count   int                `json:"count" yaml:"count"`
	Results []SearchItemOutput `json:"results" yaml:"results"`
}

// SearchItemOutput is a single ranked item
type SearchItemOutput struct {
	Label      string `json:"label" yaml:"label"`
	Handler    string `json:"handler" yaml:"handler"`
	Value      string `json:"value" yaml:"value"`
	Icon       string `json:"icon" yaml:"icon"`
	Base64Icon string `json:"base64_icon,omitempty" yaml:"base64_icon,omitempty"`
}

type searchOptions struct {
	output string
	limit  int
	icons  bool
}

// NewSearchCommand creates the search command
func NewSearchCommand(root *rootOptions) *cobra.Command {
	opts := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Rank every source for a query and print the results",
		Long: `Search applications, notes, bookmarks, shortcuts and web suggestions for a
query and print the ranked results. The default output streams one JSON object
per line and finishes with a completion marker:

  {"type":"done","status":"ok","count":12}

Sources that fail or time out contribute nothing; the command only fails when
the results cannot be written.

Examples:
  # Stream results as NDJSON
  grinta search safari

  # First five results as a table
  grinta search "system settings" -o text -n 5

  # Skip icon extraction
  grinta search mail --icons=false`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, root, opts, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", string(cli.FormatNDJSON), "Output format (ndjson, json, yaml, text)")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "Maximum number of results (0 for all)")
	cmd.Flags().BoolVar(&opts.icons, "icons", true, "Include base64 application icons")

	return cmd
}

func runSearch(cmd *cobra.Command, root *rootOptions, opts *searchOptions, query string) error {
	format := strings.ToLower(opts.output)
	if err := cli.ValidateOutputFormat(format, cli.FormatNDJSON, cli.FormatJSON, cli.FormatYAML, cli.FormatText); err != nil {
		return err
	}
	if err := cli.ValidateLimit(opts.limit); err != nil {
		return err
	}

	query = strings.TrimSpace(query)
	results, err := rankQuery(cmd.Context(), cmd, root, opts, query)

	out := cmd.OutOrStdout()
	switch cli.OutputFormat(format) {
	case cli.FormatNDJSON:
		w := cli.NewNDJSONWriter(out)
		if err != nil {
			if doneErr := w.Done(err); doneErr != nil {
				return errors.Join(err, doneErr)
			}
			return err
		}
		for _, r := range results {
			if err := w.Write(toSearchItemOutput(r.Item)); err != nil {
				return fmt.Errorf("failed to write results: %w", err)
			}
		}
		return w.Done(nil)

	case cli.FormatText:
		if err != nil {
			return err
		}
		return outputSearchText(cmd, query, results)

	default:
		if err != nil {
			return err
		}
		doc := SearchResultOutput{Query: query, Count: len(results), Results: make([]SearchItemOutput, len(results))}
		for i, r := range results {
			doc.Results[i] = toSearchItemOutput(r.Item)
		}
		return cli.OutputResults(out, format, doc)
	}
}

// rankQuery fetches the catalog and the web suggestions concurrently and
// ranks them together with the direct web search item
func rankQuery(ctx context.Context, cmd *cobra.Command, root *rootOptions, opts *searchOptions, query string) ([]search.Result, error) {
	if query == "" {
		return nil, errors.New("query must not be empty")
	}

	cc, closer, err := commandContext(root, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	var catalog, suggestions []models.Item
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		catalog = cc.Catalog(opts.icons).Fetch(gctx)
		return nil
	})
	g.Go(func() error {
		src := cc.Suggestions()
		if src == nil {
			return nil
		}
		sctx, cancel := context.WithTimeout(gctx, cc.Settings.Search.Suggestions.Timeout)
		defer cancel()

		items, err := src.Search(sctx, query)
		if err != nil {
			cc.Logger.Warn("web suggestions unavailable", "query", query, "error", err)
			return nil
		}
		suggestions = items
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cc.Logger.Debug("ranking", "query", query, "catalog", len(catalog), "suggestions", len(suggestions))
	engine := search.NewEngine(search.StreamingWeights, opts.limit)
	return engine.Rank(search.Input{
		Query:       query,
		Catalog:     catalog,
		Suggestions: suggestions,
		Extra:       []models.Item{sources.WebSearchItem(query)},
	}), nil
}

func toSearchItemOutput(item models.Item) SearchItemOutput {
	return SearchItemOutput{
		Label:      item.Label,
		Handler:    item.Handler().String(),
		Value:      item.Value,
		Icon:       item.Icon,
		Base64Icon: item.Base64Icon,
	}
}

func outputSearchText(cmd *cobra.Command, query string, results []search.Result) error {
	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintf(out, "No results for %q\n", query)
		return nil
	}

	table := cli.NewTableFormatter(out)
	table.Header("LABEL", "KIND", "VALUE")
	for _, r := range results {
		table.Row(
			cli.TruncateString(r.Item.Label, 40),
			r.Item.Handler().DisplayName(),
			cli.TruncateString(r.Item.Value, 60),
		)
	}
	return table.Flush()
}
