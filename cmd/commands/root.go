package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/grinta-launcher/grinta/internal/cli"
	"github.com/grinta-launcher/grinta/internal/config"
	"github.com/grinta-launcher/grinta/internal/logutil"
)

// rootOptions carries the persistent flags and the shared viper instance
type rootOptions struct {
	v       *viper.Viper
	cfgFile string
	quiet   bool
	noColor bool
	yes     bool
	version string
}

// NewRootCommand creates the grinta command tree
func NewRootCommand(version string) *cobra.Command {
	opts := &rootOptions{v: viper.New(), version: version}
	config.SetDefaults(opts.v)

	cmd := &cobra.Command{
		Use:   "grinta",
		Short: "Keyboard launcher for apps, notes, bookmarks, files and the web",
		Long: `Grinta searches installed applications, notes, browser bookmarks, shortcuts,
files and web suggestions as you type, and opens whatever you pick.

Run without arguments to start the interactive launcher.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cli.SetGlobalFlags(opts.quiet, opts.noColor, opts.yes)
			cli.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
			return config.Init(opts.v, opts.cfgFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLaunch(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/grinta/config.yaml)")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.String("log-format", "", "log format: text or json")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress informational output")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable symbols in messages")
	flags.BoolVarP(&opts.yes, "yes", "y", false, "skip confirmation prompts")
	_ = opts.v.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = opts.v.BindPFlag("logging.format", flags.Lookup("log-format"))

	cmd.AddCommand(
		NewSearchCommand(opts),
		NewHistoryCommand(opts),
		NewConfigCommand(opts),
		NewVersionCommand(opts),
	)
	return cmd
}

// Execute runs the root command and exits non-zero on failure
func Execute(version string) {
	if err := NewRootCommand(version).Execute(); err != nil {
		cli.PrintError("%v", err)
		os.Exit(1)
	}
}

// commandContext loads the settings and builds a command context logging to
// logOut, unless logging.file redirects it
func commandContext(opts *rootOptions, logOut io.Writer) (*cli.CommandContext, io.Closer, error) {
	settings, err := config.Load(opts.v)
	if err != nil {
		return nil, nil, err
	}
	logger, closer, err := logutil.Open(logutil.LoggerConfigFromSettings(settings.Logging), logOut)
	if err != nil {
		return nil, nil, err
	}
	cc, err := cli.NewCommandContext(settings, logger)
	if err != nil {
		closer.Close()
		return nil, nil, err
	}
	return cc, closer, nil
}
