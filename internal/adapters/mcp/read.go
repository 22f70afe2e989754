// Package mcp exposes the journal and the delivery pipeline as MCP
// tools served over stdio.
package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"cliprelay/internal/domain"
	"cliprelay/internal/ports"
)

// RegisterReadTools adds the read-only tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, journal ports.Journal, tags domain.TagMap) {
	s.AddTool(historyTool(), historyHandler(journal))
	s.AddTool(sectionsTool(), sectionsHandler(tags))
}

// --- history ---

func historyTool() mcp.Tool {
	return mcp.NewTool("history",
		mcp.WithDescription("List recent delivery attempts from the journal, newest first."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of records to return (default 20)."),
		),
	)
}

func historyHandler(journal ports.Journal) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := req.GetInt("limit", 20)

		records, err := journal.Recent(limit)
		if err != nil {
			return toolError(err)
		}
		if len(records) == 0 {
			return mcp.NewToolResultText("No deliveries recorded."), nil
		}

		var sb strings.Builder
		for _, rec := range records {
			fmt.Fprintf(&sb, "%s  [%s] %s: %s",
				rec.CreatedAt.Format("2006-01-02 15:04:05"), rec.Status, rec.Tag, rec.Text)
			if rec.Detail != "" {
				fmt.Fprintf(&sb, "  (%s)", rec.Detail)
			}
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- sections ---

func sectionsTool() mcp.Tool {
	return mcp.NewTool("sections",
		mcp.WithDescription("List the configured tags and the sections they resolve to."),
	)
}

func sectionsHandler(tags domain.TagMap) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		keys := make([]string, 0, len(tags))
		for tag := range tags {
			keys = append(keys, tag)
		}
		sort.Strings(keys)

		var sb strings.Builder
		for _, tag := range keys {
			fmt.Fprintf(&sb, "%s: %s\n", tag, tags[tag])
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
