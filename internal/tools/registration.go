package tools

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Registration pairs an MCP tool definition with its handler function.
type Registration struct {
	Tool    mcp.Tool
	Handler server.ToolHandlerFunc
}

// RegisterAll adds every Registration to s. Nothing is added if any
// registration lacks a handler or reuses a tool name, since the MCP server
// would otherwise silently replace the earlier tool.
func RegisterAll(s *server.MCPServer, registrations []Registration) error {
	seen := make(map[string]struct{}, len(registrations))
	for _, r := range registrations {
		if r.Handler == nil {
			return fmt.Errorf("tool %q has no handler", r.Tool.Name)
		}
		if _, dup := seen[r.Tool.Name]; dup {
			return fmt.Errorf("tool %q registered twice", r.Tool.Name)
		}
		seen[r.Tool.Name] = struct{}{}
	}
	for _, r := range registrations {
		s.AddTool(r.Tool, r.Handler)
	}
	return nil
}
