package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/wesleyorama2/restkit/internal/config"
	"github.com/wesleyorama2/restkit/internal/output"
)

var version = "0.1.0"

// app is the state shared by every command of one invocation.
type app struct {
	settings config.Settings
	logger   zerolog.Logger
	debug    bool
	noColor  bool
	color    bool
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{logger: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:     "restkit",
		Short:   "A small terminal HTTP client for JSON APIs",
		Version: version,
		Long: `restkit sends HTTP requests from the terminal and shows the response with
status, timing and pretty-printed JSON. It can extract values with JSONPath,
validate bodies against a JSON Schema and repeat a request to report latency
percentiles.

Defaults can be set in the environment: RESTKIT_TIMEOUT, RESTKIT_OUTPUT,
RESTKIT_USER_AGENT, RESTKIT_NO_COLOR and RESTKIT_DEBUG.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "Log diagnostics to stderr")
	rootCmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(newGetCmd(a))
	rootCmd.AddCommand(newPostCmd(a))
	rootCmd.AddCommand(newPutCmd(a))
	rootCmd.AddCommand(newPatchCmd(a))
	rootCmd.AddCommand(newDeleteCmd(a))
	rootCmd.AddCommand(newDemoCmd(a))

	return rootCmd
}

// setup loads environment settings, lets flags override them and builds
// the logger.
func (a *app) setup(cmd *cobra.Command) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}
	a.settings = *settings

	flags := cmd.Flags()
	if !flags.Changed("debug") {
		a.debug = settings.Debug
	}
	if !flags.Changed("no-color") {
		a.noColor = settings.NoColor
	}

	a.color = output.UseColor(cmd.OutOrStdout(), a.noColor)
	color.NoColor = !a.color

	a.logger = newLogger(cmd.ErrOrStderr(), a.debug, output.UseColor(cmd.ErrOrStderr(), a.noColor))
	a.logger.Debug().
		Int("timeout", settings.Timeout).
		Str("output", settings.Output).
		Str("command", cmd.Name()).
		Msg("settings loaded")

	return nil
}

// Execute runs the root command and reports any error on stderr.
// It is called by main.main().
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", output.ErrorIcon(color.NoColor), err)
		return err
	}
	return nil
}
