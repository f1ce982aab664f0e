package cli

import (
	"github.com/spf13/cobra"

	"github.com/ironsheep/line-tools-mcp/internal/server"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP tools over stdin/stdout",
		Long:  `Serve reads JSON-RPC 2.0 requests from stdin, one per line, and writes responses to stdout. Configure it in an MCP client.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
}

func runServe(cmd *cobra.Command) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	cfg := configFromContext(ctx)

	srv, err := server.New(cfg, version, logger)
	if err != nil {
		return err
	}
	logger.Debug("server starting", "version", version, "commit", commit, "built", date)
	return srv.Serve(cmd.InOrStdin(), cmd.OutOrStdout())
}
