package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Chintnn/walkability-pathfinder/internal/client"
)

type commandContext struct {
	serverURL      string
	pollInterval   time.Duration
	requestTimeout time.Duration
	jsonOutput     bool
}

func (c *commandContext) newClient() *client.Client {
	return client.New(c.serverURL, c.pollInterval, c.requestTimeout, zap.NewNop())
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "walkctl",
		Short:         "Walkability Pathfinder CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&ctx.serverURL, "server", "http://localhost:8080", "Walkability API base URL")
	flags.DurationVar(&ctx.pollInterval, "poll-interval", client.DefaultPollInterval, "Task polling interval")
	flags.DurationVar(&ctx.requestTimeout, "request-timeout", 30*time.Second, "Per-request HTTP timeout")
	flags.BoolVar(&ctx.jsonOutput, "json", false, "Print raw JSON")

	rootCmd.AddCommand(newAnalyzeCommand(ctx))
	rootCmd.AddCommand(newStatusCommand(ctx))
	rootCmd.AddCommand(newResultsCommand(ctx))

	return rootCmd
}
