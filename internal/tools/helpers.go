// Package tools provides shared helper utilities for MCP tool handlers.
package tools

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jamesprial/confcms-mcp/internal/audit"
	"github.com/mark3labs/mcp-go/mcp"
)

// JSONResult marshals v to indented JSON and returns an mcp.CallToolResult.
func JSONResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ErrorResult(fmt.Sprintf("marshal result: %v", err))
	}
	return mcp.NewToolResultText(string(data))
}

// ErrorResult returns an mcp.CallToolResult flagged as an error whose text
// is msg prefixed with "error: ".
func ErrorResult(msg string) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("error: %s", msg))
}

// LogAudit logs a tool invocation to the audit logger, silently ignoring a
// nil logger. items is the number of records the call returned.
func LogAudit(logger *audit.Logger, toolName string, params map[string]any, result string, items int, start time.Time) {
	if logger == nil {
		return
	}
	_ = logger.Log(audit.Entry{
		Timestamp: start,
		Tool:      toolName,
		Params:    params,
		Result:    result,
		Items:     items,
		Duration:  time.Since(start),
	})
}
