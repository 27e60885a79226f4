package graphql

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jamesprial/confcms-mcp/internal/audit"
	"github.com/jamesprial/confcms-mcp/internal/tools"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const toolNameGraphQLQuery = "graphql_query"

// Backend names accepted by the graphql_query tool.
const (
	BackendDatoCMS    = "datocms"
	BackendContentHub = "contenthub"
)

// GraphQLTools returns the registration for the raw "graphql_query" tool,
// which runs an arbitrary query against one of the named backends.
func GraphQLTools(backends map[string]Client, logger *audit.Logger) []tools.Registration {
	return []tools.Registration{
		toolGraphQLQuery(backends, logger),
	}
}

func toolGraphQLQuery(backends map[string]Client, logger *audit.Logger) tools.Registration {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)

	tool := mcp.NewTool(toolNameGraphQLQuery,
		mcp.WithDescription("Execute an arbitrary read-only GraphQL query against one of the conference CMS backends. Use when the content tools do not expose a field you need."),
		mcp.WithString("backend",
			mcp.Required(),
			mcp.Description(fmt.Sprintf("Backend to query: one of %s.", strings.Join(names, ", "))),
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The GraphQL query string to execute."),
		),
		mcp.WithString("variables",
			mcp.Description("Optional JSON object string of variables to pass with the query."),
		),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()

		backend := req.GetString("backend", "")
		query := req.GetString("query", "")
		variablesStr := req.GetString("variables", "")

		params := map[string]any{
			"backend":   backend,
			"query":     query,
			"variables": variablesStr,
		}
		fail := func(msg string) (*mcp.CallToolResult, error) {
			tools.LogAudit(logger, toolNameGraphQLQuery, params, "error: "+msg, 0, start)
			return tools.ErrorResult(msg), nil
		}

		client, ok := backends[backend]
		if !ok {
			return fail(fmt.Sprintf("unknown backend %q (want one of %s)", backend, strings.Join(names, ", ")))
		}
		if strings.TrimSpace(query) == "" {
			return fail("query is required")
		}

		var parsedVars map[string]any
		if variablesStr != "" {
			if err := json.Unmarshal([]byte(variablesStr), &parsedVars); err != nil {
				return fail(fmt.Sprintf("parse variables JSON: %v", err))
			}
		}

		data, err := client.Execute(ctx, query, parsedVars)
		if err != nil {
			return fail(err.Error())
		}

		// Round-trip through any so JSONResult re-indents the payload.
		var parsed any
		if err := json.Unmarshal(data, &parsed); err != nil {
			return fail(err.Error())
		}

		tools.LogAudit(logger, toolNameGraphQLQuery, params, "ok", 0, start)
		return tools.JSONResult(parsed), nil
	}

	return tools.Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}
