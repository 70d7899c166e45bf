package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/karolswdev/jiramcp/internal/mcpserver"
)

// serveRunE runs the stdio protocol server until in is closed or ctx is cancelled.
func serveRunE(ctx context.Context, tools ToolDispatcher, in io.Reader, out io.Writer) error {
	Log.Info().Int("tools", len(tools.List())).Str("version", version).Msg("Starting MCP server on stdio")
	if err := mcpserver.Serve(ctx, tools, version, in, out); err != nil && ctx.Err() == nil {
		Log.Error().Err(err).Msg("MCP server stopped with an error")
		return err
	}
	Log.Info().Msg("MCP server stopped")
	return nil
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the Jira tools over MCP stdio",
	Long: `Starts an MCP server on stdin/stdout exposing the Jira issue tools.
Logs are written to stderr.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tools, err := GetProvider().ToolDispatcher()
		if err != nil {
			printSetupHint(cmd.ErrOrStderr(), err)
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serveRunE(ctx, tools, os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
