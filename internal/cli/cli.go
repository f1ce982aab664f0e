// Package cli implements the line-tools-mcp command-line interface.
//
// # Commands
//
//   - serve: Run the MCP server on stdin/stdout (the default)
//   - detect: Run redundancy elimination and the filter chains over a segment list
//   - square: Reconstruct the target square from a segment list
//
// detect and square read segments as a JSON array from --input (or stdin)
// or extract them from an image given with --image.
//
// # Configuration
//
// --config names a TOML file; without it $LINE_MCP_CONFIG is consulted and
// then the built-in defaults apply. --verbose forces debug logging.
//
// # Logging
//
// Logs go to stderr so that stdout stays free for MCP traffic and command
// output. Loggers are passed through context.Context.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ironsheep/line-tools-mcp/internal/config"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// SetVersion sets the version information displayed by --version and
// reported by the MCP server. It is called from main with values injected
// via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the CLI against the process's standard streams.
func Execute(ctx context.Context) error {
	root := newRootCmd(os.Stderr)
	return root.ExecuteContext(ctx)
}

// newRootCmd builds the command tree. Logs are written to logOut.
func newRootCmd(logOut io.Writer) *cobra.Command {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "line-tools-mcp",
		Short:        "Line geometry and square target detection over MCP",
		Long:         `line-tools-mcp classifies, deduplicates and filters line segments and reconstructs rectangular targets from them. By default it serves these operations as MCP tools over stdio.`,
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			level := cfg.LogLevel()
			if verbose {
				level = log.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(logOut, level))
			ctx = context.WithValue(ctx, configKey, cfg)
			cmd.SetContext(ctx)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("line-tools-mcp %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a TOML config file (default $"+config.EnvConfigPath+")")

	root.AddCommand(newServeCmd())
	root.AddCommand(newDetectCmd())
	root.AddCommand(newSquareCmd())

	return root
}

// configFromContext returns the configuration loaded by the root command, or
// the defaults.
func configFromContext(ctx context.Context) config.Config {
	if cfg, ok := ctx.Value(configKey).(config.Config); ok {
		return cfg
	}
	return config.Default()
}
