// Package cmd implements the command-line interface for the email classifier.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/north-cloud/email-classifier/cmd/classify"
	"github.com/jonesrussell/north-cloud/email-classifier/cmd/httpd"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/bootstrap"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=...".
var Version = "2.0.0"

// NewRootCommand builds the command tree. Running without a subcommand serves the API.
func NewRootCommand() *cobra.Command {
	opts := &bootstrap.Options{}

	rootCmd := &cobra.Command{
		Use:   "email-classifier",
		Short: "Classify Portuguese business email as productive or unproductive",
		Long: `Classify Portuguese business email as productive or unproductive, assign
a pattern type and priority, and suggest a reply.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return httpd.Start(cmd.Context(), *opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "",
		"config file (default is $CONFIG_PATH or ./config.yml)")
	rootCmd.PersistentFlags().BoolVar(&opts.Debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "email-classifier version %s\n", Version)
		},
	})
	rootCmd.AddCommand(httpd.Command(opts))
	rootCmd.AddCommand(classify.Command(opts))

	return rootCmd
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}
