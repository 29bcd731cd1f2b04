package service

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/theapemachine/a2a-bridge/pkg/bridge"
)

/*
NewMCPServer registers the bridge's tools on an MCP server, so MCP clients
speaking stdio can use the bridge directly.
*/
func NewMCPServer(b *bridge.Bridge, version string) *server.MCPServer {
	srv := server.NewMCPServer(
		"a2a-bridge",
		version,
		server.WithToolCapabilities(false),
		server.WithLogging(),
	)

	for _, tool := range b.Tools() {
		srv.AddTool(tool.MCPTool(), toolHandler(b, tool.Name))
	}

	return srv
}

/*
ServeStdio blocks serving srv over stdin/stdout.
*/
func ServeStdio(srv *server.MCPServer) error {
	return server.ServeStdio(srv)
}

/*
toolHandler returns the Result as JSON text; failed invocations are flagged
as tool errors so MCP clients can tell them apart.
*/
func toolHandler(b *bridge.Bridge, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := b.Invoke(ctx, name, req.GetArguments())

		buf, err := json.Marshal(result)

		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if !result.Success {
			return mcp.NewToolResultError(string(buf)), nil
		}

		return mcp.NewToolResultText(string(buf)), nil
	}
}
