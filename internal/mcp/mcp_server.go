// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/gitsignals/gitsignals/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the GitSignals MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"GitSignals Momentum Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
	}

	// --- 1. Tool: score_repositories ---
	s.AddTool(mcp.NewTool("score_repositories",
		mcp.WithDescription("Score a batch of repository metrics and rank them by early momentum."),
		mcp.WithString("input_file", mcp.Description("Path to the JSON file with collected repository metrics."), mcp.Required()),
		mcp.WithNumber("threshold", mcp.Description("Minimum score for a repository to qualify. Defaults to the configured threshold.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
		mcp.WithBoolean("record", mcp.Description("Record the run as a dated snapshot. Defaults to false to keep tool calls side-effect free.")),
	), h.handleScoreRepositories)

	// --- 2. Tool: get_repo_trend ---
	s.AddTool(mcp.NewTool("get_repo_trend",
		mcp.WithDescription("Fetch the recorded score history for one repository."),
		mcp.WithString("full_name", mcp.Description("Repository in owner/name form."), mcp.Required()),
		mcp.WithNumber("window", mcp.Description("Number of most recent periods to return.")),
	), h.handleGetRepoTrend)

	return s
}

// StartMCPServer starts the GitSignals MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
