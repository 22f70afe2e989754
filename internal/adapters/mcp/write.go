package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"cliprelay/internal/domain"
	"cliprelay/internal/ports"
)

// SendOptions bundles what the send tool needs to run the delivery
// pipeline outside the clipboard loop.
type SendOptions struct {
	Deliverer  ports.Deliverer
	Journal    ports.Journal // may be nil
	Tags       domain.TagMap
	UnknownTag domain.UnknownTagPolicy
	Who        string
}

// RegisterWriteTools adds the tools that trigger deliveries.
func RegisterWriteTools(s *server.MCPServer, opts SendOptions) {
	s.AddTool(sendTool(), sendHandler(opts))
}

func sendTool() mcp.Tool {
	return mcp.NewTool("send",
		mcp.WithDescription("Classify a tag-prefixed line (e.g. \"todo: buy milk\") and deliver it to the configured endpoint."),
		mcp.WithString("text",
			mcp.Description("The line to classify and send."),
			mcp.Required(),
		),
	)
}

func sendHandler(opts SendOptions) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text := req.GetString("text", "")
		if text == "" {
			return toolError(fmt.Errorf("text is required"))
		}

		entry := domain.Classify(text, opts.Tags, opts.UnknownTag)
		if entry == nil {
			return mcp.NewToolResultText("Not classified: no tag-prefixed line found."), nil
		}

		outcome := opts.Deliverer.Deliver(ctx, *entry)
		if opts.Journal != nil {
			if err := opts.Journal.Record(*entry, opts.Who, outcome); err != nil {
				return toolError(err)
			}
		}

		if outcome.OK() {
			return mcp.NewToolResultText(fmt.Sprintf("Sent %s: %s", entry.Tag, entry.Text)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Delivery failed: %s", outcome)), nil
	}
}
