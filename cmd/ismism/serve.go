package main

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gorewood/ismism/internal/catalog"
	ismismmcp "github.com/gorewood/ismism/internal/mcp"
	"github.com/gorewood/ismism/internal/watch"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	var watchFlag bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run ismism as a Model Context Protocol (MCP) server over stdio.

This exposes dataset lookups as MCP tools that any MCP-capable agent
environment can use.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "ismism": {
        "command": "ismism",
        "args": ["serve", "--watch"]
      }
    }
  }

With --watch the dataset file is reloaded when it changes; a reload that
fails keeps serving the previous dataset. Logs go to stderr.

Available tools: search, show, related, stats`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, &mcp.StdioTransport{}, watchFlag)
		},
	}

	cmd.Flags().BoolVar(&watchFlag, "watch", false, "Reload the dataset when its file changes")

	return cmd
}

// runServe serves MCP on transport until the client disconnects or the
// command context ends. With watchFlag the reloader runs alongside.
func runServe(cmd *cobra.Command, transport mcp.Transport, watchFlag bool) error {
	env, err := prepare(cmd)
	if err != nil {
		return err
	}
	logger := newServeLogger(cmd)
	defer func() { _ = logger.Sync() }()

	ds, err := env.dataset(nil)
	if err != nil {
		return err
	}
	handle := catalog.NewHandle(ds, env.cfg.Dataset)
	logger.Info("serving dataset",
		zap.String("path", handle.Path()),
		zap.Int("records", ds.Len()),
		zap.Bool("watch", watchFlag))

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	group, ctx := errgroup.WithContext(ctx)

	if watchFlag {
		reloader, err := watch.New(handle, watch.WithLogger(logger.Named("watch")))
		if err != nil {
			env.printer.Error(err)
			return err
		}
		defer func() { _ = reloader.Close() }()
		group.Go(func() error {
			return reloader.Run(ctx)
		})
	}

	server := ismismmcp.NewServer(buildVersion(), handle)
	group.Go(func() error {
		// The reloader has nothing to do once the client is gone.
		defer cancel()
		return server.Run(ctx, transport)
	})

	err = group.Wait()
	logger.Info("server stopped", zap.Error(err))
	return err
}
