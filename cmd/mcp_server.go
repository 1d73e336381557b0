package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"

	"uidriver/internal/engine"
	"uidriver/internal/version"
)

// mcpServer exposes engine operations as MCP tools. The engine simulates
// pointer input against OS-global state, so tool calls are serialized.
type mcpServer struct {
	engine *engine.Engine
	mu     sync.Mutex
	mcp    *mcpserver.MCPServer
}

func newMCPServer(eng *engine.Engine) *mcpServer {
	s := &mcpServer{engine: eng}
	s.mcp = mcpserver.NewMCPServer("uidriver", version.Version)
	s.registerTools()
	return s
}

func (s *mcpServer) serve(transport string, port int) error {
	switch transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", transport)
	}
}

func (s *mcpServer) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("list",
			mcp.WithDescription("List the descriptor keys available in the catalog"),
		),
		s.handleList,
	)

	s.mcp.AddTool(
		mcp.NewTool("invoke",
			mcp.WithDescription("Locate the control for a descriptor key and perform its preferred action"),
			mcp.WithString("key", mcp.Description("Descriptor key"), mcp.Required()),
		),
		s.handleInvoke,
	)

	s.mcp.AddTool(
		mcp.NewTool("set_value",
			mcp.WithDescription("Assign a value to a data-entry or toggle control"),
			mcp.WithString("key", mcp.Description("Descriptor key"), mcp.Required()),
			mcp.WithString("value", mcp.Description("Value to assign; toggles accept true/false, 1/0, yes/no, on/off"), mcp.Required()),
		),
		s.handleSetValue,
	)

	s.mcp.AddTool(
		mcp.NewTool("patterns",
			mcp.WithDescription("Report a located control's live capabilities next to the catalog's declarations"),
			mcp.WithString("key", mcp.Description("Descriptor key"), mcp.Required()),
		),
		s.handlePatterns,
	)

	s.mcp.AddTool(
		mcp.NewTool("collect",
			mcp.WithDescription("Extract tabular content (headers and rows) from a control"),
			mcp.WithString("key", mcp.Description("Descriptor key"), mcp.Required()),
		),
		s.handleCollect,
	)
}

func (s *mcpServer) handleList(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return mcp.NewToolResultText(strings.Join(s.engine.Keys(), "\n")), nil
}

func (s *mcpServer) handleInvoke(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key := request.GetString("key", "")

	s.mu.Lock()
	defer s.mu.Unlock()

	action, err := s.engine.Invoke(key)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Executed %s on '%s'", action, key)), nil
}

func (s *mcpServer) handleSetValue(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key := request.GetString("key", "")
	value := request.GetString("value", "")

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.engine.Set(key, value)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return yamlResult(res)
}

func (s *mcpServer) handlePatterns(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key := request.GetString("key", "")

	s.mu.Lock()
	defer s.mu.Unlock()

	diag, err := s.engine.Diagnose(key)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return yamlResult(diag)
}

func (s *mcpServer) handleCollect(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key := request.GetString("key", "")

	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := s.engine.Collect(key)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	// Tables keep the compact JSON shape consumers of the CLI already parse.
	b, err := json.Marshal(table)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func yamlResult(v any) (*mcp.CallToolResult, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
