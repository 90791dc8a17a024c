package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/grinta-launcher/grinta/internal/cli"
	"github.com/grinta-launcher/grinta/pkg/models"
)

// HistoryOutput is the json and yaml document of history list
type HistoryOutput struct {
	Path    string        `json:"path" yaml:"path"`
	Count   int           `json:"count" yaml:"count"`
	Entries []HistoryItem `json:"entries" yaml:"entries"`
}

// HistoryItem is one executed item, most recent first
type HistoryItem struct {
	Label   string     `json:"label" yaml:"label"`
	Handler string     `json:"handler" yaml:"handler"`
	Value   string     `json:"value" yaml:"value"`
	RanAt   *time.Time `json:"ran_at,omitempty" yaml:"ran_at,omitempty"`
}

// NewHistoryCommand creates the history command group
func NewHistoryCommand(root *rootOptions) *cobra.Command {
	var output string
	var limit int

	list := &cobra.Command{
		Use:   "list",
		Short: "Show recently launched items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryList(cmd, root, output, limit)
		},
	}
	list.Flags().StringVarP(&output, "output", "o", string(cli.FormatText), "Output format (text, json, yaml)")
	list.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of entries (0 for all)")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Forget every launched item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryClear(cmd, root)
		},
	}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect or clear the launch history",
		Long: `The launch history is shown when the query is empty and keeps the most
recently executed item at the top.

Examples:
  # Show the last 20 launches
  grinta history

  # Everything, as JSON
  grinta history list -n 0 -o json

  # Start over without prompting
  grinta history clear --yes`,
		Args: cobra.NoArgs,
		RunE: list.RunE,
	}
	cmd.Flags().AddFlagSet(list.Flags())
	cmd.AddCommand(list, clearCmd)
	return cmd
}

func runHistoryList(cmd *cobra.Command, root *rootOptions, output string, limit int) error {
	format := strings.ToLower(output)
	if err := cli.ValidateOutputFormat(format, cli.FormatText, cli.FormatJSON, cli.FormatYAML); err != nil {
		return err
	}
	if err := cli.ValidateLimit(limit); err != nil {
		return err
	}

	cc, closer, err := commandContext(root, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closer.Close()

	store := cc.HistoryStore()
	entries := recentFirst(store.Load(), limit)

	if cli.OutputFormat(format) != cli.FormatText {
		doc := HistoryOutput{Path: store.Path(), Count: len(entries), Entries: make([]HistoryItem, len(entries))}
		for i, item := range entries {
			doc.Entries[i] = HistoryItem{
				Label:   item.Label,
				Handler: item.Handler().String(),
				Value:   item.Value,
				RanAt:   item.RanAt,
			}
		}
		return cli.OutputResults(cmd.OutOrStdout(), format, doc)
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "History is empty")
		return nil
	}

	table := cli.NewTableFormatter(out)
	table.Header("WHEN", "LABEL", "KIND", "VALUE")
	for _, item := range entries {
		when := "-"
		if item.RanAt != nil {
			when = item.RanAt.Local().Format("2006-01-02 15:04")
		}
		table.Row(when, cli.TruncateString(item.Label, 40), item.Handler().DisplayName(), cli.TruncateString(item.Value, 50))
	}
	return table.Flush()
}

func runHistoryClear(cmd *cobra.Command, root *rootOptions) error {
	cc, closer, err := commandContext(root, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closer.Close()

	store := cc.HistoryStore()
	ok, err := cli.ConfirmFrom(cmd.InOrStdin(), cmd.OutOrStdout(), "Clear the launch history?", false)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}
	if !ok {
		cli.PrintInfo("History left unchanged")
		return nil
	}

	if err := store.Clear(); err != nil {
		return err
	}
	cli.PrintSuccess("Cleared history at %s", store.Path())
	return nil
}

// recentFirst reverses the stored order and keeps at most limit entries
func recentFirst(history []models.Item, limit int) []models.Item {
	n := len(history)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]models.Item, 0, n)
	for i := len(history) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, history[i])
	}
	return out
}
