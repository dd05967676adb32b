package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/getpatchwork/pwclient/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve Patchwork queries as MCP tools over stdio",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	mcp.WatchParent(ctx, cancel)

	server := mcp.NewServer(s.client, s.project, version)
	return server.Run(ctx)
}
