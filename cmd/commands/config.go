package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grinta-launcher/grinta/internal/cli"
	"github.com/grinta-launcher/grinta/internal/config"
)

// NewConfigCommand creates the config command
func NewConfigCommand(root *rootOptions) *cobra.Command {
	var output string

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Long: `Print the settings after defaults, the config file and GRINTA_* environment
variables have been applied. The YAML output is a valid config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := strings.ToLower(output)
			if err := cli.ValidateOutputFormat(format, cli.FormatYAML, cli.FormatJSON); err != nil {
				return err
			}
			settings, err := config.Load(root.v)
			if err != nil {
				return err
			}
			return cli.OutputResults(cmd.OutOrStdout(), format, settings)
		},
	}
	show.Flags().StringVarP(&output, "output", "o", string(cli.FormatYAML), "Output format (yaml, json)")

	path := &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file := root.v.ConfigFileUsed()
			if file == "" {
				var err error
				if file, err = config.DefaultPath(); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), file)
			return nil
		},
	}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the launcher configuration",
		Args:  cobra.NoArgs,
		RunE:  show.RunE,
	}
	cmd.Flags().AddFlagSet(show.Flags())
	cmd.AddCommand(show, path)
	return cmd
}
