package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gitsignals/gitsignals/core"
	"github.com/gitsignals/gitsignals/internal/contract"
	"github.com/gitsignals/gitsignals/internal/history"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

func (h *toolHandler) handleScoreRepositories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.InputFile = request.GetString("input_file", "")
	if cfg.InputFile == "" {
		return mcp.NewToolResultError("input_file is required"), nil
	}
	if v := request.GetFloat("threshold", 0); v > 0 {
		cfg.Threshold = v
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}
	// Tool calls stay read-only unless recording is requested explicitly.
	cfg.DryRun = !request.GetBool("record", false)

	ranked, err := core.RunPipeline(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(ranked, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetRepoTrend(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	fullName := request.GetString("full_name", "")
	if fullName == "" {
		return mcp.NewToolResultError("full_name is required"), nil
	}
	if w := request.GetInt("window", 0); w > 0 {
		cfg.TrendWindow = w
	}

	store, err := history.GetHistoryStore(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("history unavailable: %v", err)), nil
	}
	tracker := core.NewTracker(store, cfg.TrendWindow)

	points, err := tracker.GetTrendPoints(fullName, cfg.RunDate)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("trend lookup failed: %v", err)), nil
	}

	result := map[string]any{
		"full_name": fullName,
		"points":    points,
	}
	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
