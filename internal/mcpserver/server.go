// Package mcpserver exposes a tool dispatcher over the Model Context Protocol on stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"io"
	stdlog "log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/karolswdev/jiramcp/internal/dispatch"
)

// ServerName is the implementation name reported during the protocol handshake.
const ServerName = "jira-mcp-server"

// Dispatcher lists tools and runs calls against them.
type Dispatcher interface {
	List() []dispatch.Descriptor
	Dispatch(ctx context.Context, name string, args json.RawMessage) *dispatch.Result
}

// NewServer registers every descriptor of d as an MCP tool.
func NewServer(d Dispatcher, version string) *server.MCPServer {
	s := server.NewMCPServer(ServerName, version, server.WithToolCapabilities(true))

	descriptors := d.List()
	tools := make([]server.ServerTool, 0, len(descriptors))
	for _, desc := range descriptors {
		tools = append(tools, server.ServerTool{
			Tool:    mcp.NewToolWithRawSchema(desc.Name, desc.Description, desc.InputSchema),
			Handler: callHandler(d),
		})
	}
	s.AddTools(tools...)
	log.Debug().Int("tools", len(tools)).Msg("Registered MCP tools")
	return s
}

// callHandler adapts the dispatcher to the MCP tool handler signature. Every outcome is
// carried in the result; the returned error is always nil.
func callHandler(d Dispatcher) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := json.Marshal(req.Params.Arguments)
		if err != nil {
			log.Error().Err(err).Str("tool", req.Params.Name).Msg("Failed to encode tool arguments")
			return mcp.NewToolResultError("Error parsing parameters. Error: " + err.Error()), nil
		}
		return toCallToolResult(d.Dispatch(ctx, req.Params.Name, args)), nil
	}
}

func toCallToolResult(res *dispatch.Result) *mcp.CallToolResult {
	content := make([]mcp.Content, 0, len(res.Content))
	for _, c := range res.Content {
		content = append(content, mcp.NewTextContent(c.Text))
	}
	return &mcp.CallToolResult{Content: content, IsError: res.IsError}
}

// Serve runs the protocol on in and out until ctx is done or in is closed.
func Serve(ctx context.Context, d Dispatcher, version string, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(NewServer(d, version))
	stdio.SetErrorLogger(stdlog.New(log.Logger, "", 0))
	log.Info().Str("server", ServerName).Str("version", version).Msg("Serving MCP on stdio")
	return stdio.Listen(ctx, in, out)
}
