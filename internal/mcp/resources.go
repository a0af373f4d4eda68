// ABOUTME: MCP resource implementations for the maintenance store.
// ABOUTME: Provides mtbmaint://due, mtbmaint://snapshot, and mtbmaint://guides resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/mtbmaint/internal/schedule"
	"github.com/harperreed/mtbmaint/internal/transfer"
)

const (
	dueURI      = "mtbmaint://due"
	snapshotURI = "mtbmaint://snapshot"
	guidesURI   = "mtbmaint://guides"
)

func (s *Server) registerResources() {
	// mtbmaint://due - what needs attention across the fleet
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         dueURI,
		Name:        "Due Maintenance",
		Description: "Overdue, due and upcoming maintenance for every bike",
		MIMEType:    "application/json",
	}, s.handleDueResource)

	// mtbmaint://snapshot - the full export document
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         snapshotURI,
		Name:        "Maintenance Data Snapshot",
		Description: "All bikes, maintenance logs and rides in export format",
		MIMEType:    "application/json",
	}, s.handleSnapshotResource)

	// mtbmaint://guides - the guide catalog
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         guidesURI,
		Name:        "Maintenance Guides",
		Description: "Every maintenance guide with steps, tools and service interval",
		MIMEType:    "application/json",
	}, s.handleGuidesResource)
}

// Resource handlers

func (s *Server) handleDueResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	items := s.store.DueAcrossFleet(s.catalog)
	if items == nil {
		items = []schedule.DueItem{}
	}
	return jsonResource(dueURI, map[string]any{
		"summary": schedule.Summarize(items),
		"items":   items,
	})
}

func (s *Server) handleSnapshotResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	data, err := transfer.EncodeJSON(s.store.ExportSnapshot())
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return textResource(snapshotURI, string(data)), nil
}

func (s *Server) handleGuidesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return jsonResource(guidesURI, map[string]any{
		"categories": s.catalog.Categories(),
		"guides":     s.catalog.All(),
	})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return textResource(uri, string(data)), nil
}

func textResource(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}
