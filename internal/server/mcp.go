package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/iwvelando/wishlist-scheduler/internal/wishlist"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// ToolSchedule is the MCP tool name for building a wishlist schedule.
const ToolSchedule = "wishlist_schedule"

func newMCPServer(h *handler) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "wishlist-scheduler",
			Version: h.version,
		},
		nil,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolSchedule,
		Description: "Plans when each wishlist player can be traded in within the salary cap, with confidence scores, warnings and a cash generation plan when funds fall short",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args wishlist.Request) (*mcp.CallToolResult, any, error) {
		resp, err := h.scheduler.Schedule(ctx, args)
		if err != nil {
			h.logger.Warn("mcp schedule failed",
				zap.String("op", "server.mcpSchedule"),
				zap.Error(err),
			)
			return toolError(err), nil, nil
		}
		b, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSONBytes(b), nil, nil
	})

	return server
}

func newMCPHandler(h *handler) http.Handler {
	server := newMCPServer(h)
	return mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})
}

func toolJSONBytes(b []byte) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
