package app

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/xano-labs/xano-mcp-server/internal/config"
	"github.com/xano-labs/xano-mcp-server/internal/mcp"
	"github.com/xano-labs/xano-mcp-server/internal/tools"
	"github.com/xano-labs/xano-mcp-server/internal/xano"
)

// NewToolbox registers the full Xano catalogue bound to deps.
func NewToolbox(deps tools.Deps, log *logrus.Entry) *mcp.Toolbox {
	tb := mcp.NewToolbox(log)
	tb.MustRegister(tools.Catalogue(deps)...)
	return tb
}

// NewMCPServer wires a dispatcher built from cfg into an MCP server.
func NewMCPServer(cfg config.Config, log *logrus.Entry) *mcp.Server {
	client := xano.NewClient(cfg, xano.WithLogger(log.WithField("component", "xano")))
	deps := tools.Deps{Caller: client, Fetcher: client, Workspace: cfg.Workspace}
	return mcp.NewServer(NewToolbox(deps, log.WithField("component", "mcp")))
}

// RunMCPHTTP serves the MCP server over HTTP on addr until ctx ends.
func RunMCPHTTP(ctx context.Context, server *mcp.Server, addr string, log *logrus.Entry) error {
	return mcp.RunHTTP(ctx, server, addr, log.WithField("component", "http"))
}
