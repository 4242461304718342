package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lifetick/lifetick/core"
	"github.com/lifetick/lifetick/internal/contract"
	"github.com/lifetick/lifetick/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	store   contract.SampleStore
}

// requestConfig clones the base config and applies the per-request overrides
// shared by every tool: reference instant, baseline and profile.
func (h *toolHandler) requestConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()

	if at := request.GetString("at", ""); at != "" {
		if err := contract.RevalidateAnchor(cfg, at, time.Now()); err != nil {
			return nil, err
		}
	}
	if b := request.GetFloat("baseline", 0); b > 0 {
		if b > contract.MaxBaselineYears {
			return nil, fmt.Errorf("baseline must be between 0 and %d years", contract.MaxBaselineYears)
		}
		cfg.BaselineYears = b
	}
	if a := request.GetFloat("age", 0); a > 0 {
		if a > contract.MaxProfileAgeYears {
			return nil, fmt.Errorf("age must be between 0 and %d years", contract.MaxProfileAgeYears)
		}
		cfg.Profile.CurrentAge = a
	}
	if y := request.GetInt("birth_year", 0); y > 0 {
		cfg.Profile.BirthYear = y
		if request.GetFloat("age", 0) <= 0 {
			cfg.Profile.CurrentAge = contract.AgeAtTime(y, time.Now())
		}
	}
	if p := request.GetString("period", ""); p != "" {
		period, err := schema.ParsePeriod(p)
		if err != nil {
			return nil, err
		}
		cfg.Period = period
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	return cfg, nil
}

func (h *toolHandler) handleGetProjection(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid projection parameters: %v", err)), nil
	}

	pair, err := core.GetProjectionResults(ctx, cfg, h.store, core.NewEngineFromConfig(cfg))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("projection failed: %v", err)), nil
	}

	// The scored-sample slice is bulky and per-sample detail is not what a
	// projection consumer asked for.
	trimmed := *pair
	trimmed.Scored = nil
	jsonData, _ := json.MarshalIndent(trimmed, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetCountdown(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid countdown parameters: %v", err)), nil
	}

	data, err := core.GetCountdownResults(ctx, cfg, h.store, core.NewEngineFromConfig(cfg))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("countdown failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(data, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetImpact(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid impact parameters: %v", err)), nil
	}

	byMetric, combined, err := core.GetImpactResults(ctx, cfg, h.store, core.NewEngineFromConfig(cfg))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("impact aggregation failed: %v", err)), nil
	}

	result := struct {
		Period   schema.PeriodType                             `json:"period"`
		ByMetric map[schema.MetricType]schema.AggregatedImpact `json:"byMetric"`
		Combined schema.AggregatedImpact                       `json:"combined"`
	}{cfg.Period, byMetric, combined}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetRecommendations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid recommendation parameters: %v", err)), nil
	}

	items, err := core.GetRecommendationResults(ctx, cfg, h.store, core.NewEngineFromConfig(cfg))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("recommendation derivation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(items, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
