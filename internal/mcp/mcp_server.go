// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/lifetick/lifetick/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Lifetick MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, store contract.SampleStore) *server.MCPServer {
	s := server.NewMCPServer(
		"Lifetick Projection Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		store:   store,
	}

	// --- 1. Tool: get_projection ---
	s.AddTool(mcp.NewTool("get_projection",
		mcp.WithDescription("Compute the current and optimal-habits life expectancy projections from stored health samples."),
		mcp.WithString("at", mcp.Description("Reference instant, absolute ISO8601 or relative like '2 days ago'. Defaults to now.")),
		mcp.WithNumber("baseline", mcp.Description("Baseline life expectancy in years. Required unless configured.")),
		mcp.WithNumber("age", mcp.Description("Current age in years.")),
		mcp.WithNumber("birth_year", mcp.Description("Birth year, an alternative to age.")),
	), h.handleGetProjection)

	// --- 2. Tool: get_countdown ---
	s.AddTool(mcp.NewTool("get_countdown",
		mcp.WithDescription("Render one life countdown tick: years, days and hh:mm:ss remaining plus lifespan progress."),
		mcp.WithString("at", mcp.Description("Reference instant, absolute ISO8601 or relative like '2 days ago'.")),
		mcp.WithNumber("baseline", mcp.Description("Baseline life expectancy in years.")),
		mcp.WithNumber("age", mcp.Description("Current age in years.")),
		mcp.WithNumber("birth_year", mcp.Description("Birth year, an alternative to age.")),
	), h.handleGetCountdown)

	// --- 3. Tool: get_impact ---
	s.AddTool(mcp.NewTool("get_impact",
		mcp.WithDescription("Aggregate per-metric and combined lifespan impact over a calendar window."),
		mcp.WithString("period", mcp.Description("Aggregation window (day, month, year). Defaults to the configured period."), mcp.Enum("day", "month", "year")),
		mcp.WithString("at", mcp.Description("Reference instant inside the window.")),
	), h.handleGetImpact)

	// --- 4. Tool: get_recommendations ---
	s.AddTool(mcp.NewTool("get_recommendations",
		mcp.WithDescription("Derive per-metric habit recommendations with study citations from the aggregated impacts."),
		mcp.WithString("period", mcp.Description("Aggregation window (day, month, year)."), mcp.Enum("day", "month", "year")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of recommendations returned.")),
	), h.handleGetRecommendations)

	return s
}

// StartMCPServer starts the Lifetick MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, store contract.SampleStore) error {
	s := NewMCPServer(baseCfg, store)
	return server.ServeStdio(s)
}
