package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/jamesprial/confcms-mcp/internal/audit"
	"github.com/mark3labs/mcp-go/mcp"
)

// ---------------------------------------------------------------------------
// Mock Client
// ---------------------------------------------------------------------------

// mockClient implements the Client interface for testing tool handlers.
type mockClient struct {
	executeFunc func(ctx context.Context, query string, variables map[string]any) ([]byte, error)
	calls       int
}

func (m *mockClient) Execute(ctx context.Context, query string, variables map[string]any) ([]byte, error) {
	m.calls++
	return m.executeFunc(ctx, query, variables)
}

var _ Client = (*mockClient)(nil)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

func newCallToolRequest(t *testing.T, args map[string]any) mcp.CallToolRequest {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func extractResultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil {
		t.Fatal("result is nil")
	}
	if len(result.Content) == 0 {
		t.Fatal("result has no content entries")
	}
	tc, ok := mcp.AsTextContent(result.Content[0])
	if !ok {
		t.Fatalf("first content entry is not TextContent, got %T", result.Content[0])
	}
	return tc.Text
}

func okClient(payload string) *mockClient {
	return &mockClient{
		executeFunc: func(ctx context.Context, query string, variables map[string]any) ([]byte, error) {
			return []byte(payload), nil
		},
	}
}

// ---------------------------------------------------------------------------
// Registration
// ---------------------------------------------------------------------------

func Test_GraphQLTools_Registration(t *testing.T) {
	regs := GraphQLTools(map[string]Client{
		BackendDatoCMS:    okClient(`{}`),
		BackendContentHub: okClient(`{}`),
	}, nil)

	if len(regs) != 1 {
		t.Fatalf("GraphQLTools() returned %d registrations, want 1", len(regs))
	}
	tool := regs[0].Tool
	if tool.Name != "graphql_query" {
		t.Errorf("tool name = %q, want %q", tool.Name, "graphql_query")
	}
	if regs[0].Handler == nil {
		t.Fatal("handler is nil")
	}
	for _, prop := range []string{"backend", "query", "variables"} {
		if _, ok := tool.InputSchema.Properties[prop]; !ok {
			t.Errorf("schema missing property %q", prop)
		}
	}
	required := strings.Join(tool.InputSchema.Required, ",")
	if !strings.Contains(required, "backend") || !strings.Contains(required, "query") {
		t.Errorf("required = %v, want backend and query", tool.InputSchema.Required)
	}
	if strings.Contains(required, "variables") {
		t.Errorf("variables should be optional, required = %v", tool.InputSchema.Required)
	}
}

// ---------------------------------------------------------------------------
// Handler
// ---------------------------------------------------------------------------

func Test_GraphQLQueryHandler_Cases(t *testing.T) {
	tests := []struct {
		name          string
		args          map[string]any
		dato          *mockClient
		hub           *mockClient
		wantResultErr bool
		wantContains  string
		wantDatoCalls int
		wantHubCalls  int
	}{
		{
			name:          "datocms backend is routed",
			args:          map[string]any{"backend": "datocms", "query": "{ allSpeakers { name } }"},
			dato:          okClient(`{"allSpeakers":[{"name":"Ada"}]}`),
			hub:           okClient(`{}`),
			wantContains:  "Ada",
			wantDatoCalls: 1,
		},
		{
			name:         "contenthub backend is routed",
			args:         map[string]any{"backend": "contenthub", "query": "{ allM_Content_Stage { total } }"},
			dato:         okClient(`{}`),
			hub:          okClient(`{"allM_Content_Stage":{"total":3}}`),
			wantContains: "total",
			wantHubCalls: 1,
		},
		{
			name: "variables are parsed and passed",
			args: map[string]any{"backend": "datocms", "query": "query($n: IntType) { x }", "variables": `{"n": 5}`},
			dato: &mockClient{executeFunc: func(ctx context.Context, query string, variables map[string]any) ([]byte, error) {
				if variables["n"] != float64(5) {
					return nil, errors.New("variables not passed")
				}
				return []byte(`{"x":1}`), nil
			}},
			hub:           okClient(`{}`),
			wantContains:  `"x": 1`,
			wantDatoCalls: 1,
		},
		{
			name:          "unknown backend",
			args:          map[string]any{"backend": "wordpress", "query": "{ x }"},
			dato:          okClient(`{}`),
			hub:           okClient(`{}`),
			wantResultErr: true,
			wantContains:  `unknown backend "wordpress"`,
		},
		{
			name:          "missing backend",
			args:          map[string]any{"query": "{ x }"},
			dato:          okClient(`{}`),
			hub:           okClient(`{}`),
			wantResultErr: true,
			wantContains:  "unknown backend",
		},
		{
			name:          "blank query",
			args:          map[string]any{"backend": "datocms", "query": "   "},
			dato:          okClient(`{}`),
			hub:           okClient(`{}`),
			wantResultErr: true,
			wantContains:  "query is required",
		},
		{
			name:          "invalid variables JSON does not call client",
			args:          map[string]any{"backend": "datocms", "query": "{ x }", "variables": "{nope"},
			dato:          okClient(`{}`),
			hub:           okClient(`{}`),
			wantResultErr: true,
			wantContains:  "parse variables JSON",
		},
		{
			name: "client error surfaces as tool error",
			args: map[string]any{"backend": "contenthub", "query": "{ x }"},
			dato: okClient(`{}`),
			hub: &mockClient{executeFunc: func(ctx context.Context, query string, variables map[string]any) ([]byte, error) {
				return nil, &RemoteAPIError{Endpoint: "hub", Count: 1, CorrelationID: "ref-1"}
			}},
			wantResultErr: true,
			wantContains:  "ref ref-1",
			wantHubCalls:  1,
		},
		{
			name: "missing data is a tool error",
			args: map[string]any{"backend": "datocms", "query": "{ x }"},
			dato: &mockClient{executeFunc: func(ctx context.Context, query string, variables map[string]any) ([]byte, error) {
				return nil, ErrNoData
			}},
			hub:           okClient(`{}`),
			wantResultErr: true,
			wantContains:  "response has no data",
			wantDatoCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			regs := GraphQLTools(map[string]Client{
				BackendDatoCMS:    tt.dato,
				BackendContentHub: tt.hub,
			}, nil)

			result, err := regs[0].Handler(context.Background(), newCallToolRequest(t, tt.args))
			if err != nil {
				t.Fatalf("handler returned Go error: %v", err)
			}
			text := extractResultText(t, result)

			if result.IsError != tt.wantResultErr {
				t.Errorf("IsError = %v, want %v (text %q)", result.IsError, tt.wantResultErr, text)
			}
			if tt.wantResultErr && !strings.HasPrefix(text, "error: ") {
				t.Errorf("text = %q, want error prefix", text)
			}
			if !strings.Contains(text, tt.wantContains) {
				t.Errorf("text = %q, want it to contain %q", text, tt.wantContains)
			}
			if tt.dato.calls != tt.wantDatoCalls {
				t.Errorf("datocms calls = %d, want %d", tt.dato.calls, tt.wantDatoCalls)
			}
			if tt.hub.calls != tt.wantHubCalls {
				t.Errorf("contenthub calls = %d, want %d", tt.hub.calls, tt.wantHubCalls)
			}
		})
	}
}

func Test_GraphQLQueryHandler_AuditLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := audit.NewLogger(&buf)

	regs := GraphQLTools(map[string]Client{BackendDatoCMS: okClient(`{"x":1}`)}, logger)
	req := newCallToolRequest(t, map[string]any{"backend": "datocms", "query": "{ x }"})
	if _, err := regs[0].Handler(context.Background(), req); err != nil {
		t.Fatalf("handler: %v", err)
	}
	req = newCallToolRequest(t, map[string]any{"backend": "nope", "query": "{ x }"})
	if _, err := regs[0].Handler(context.Background(), req); err != nil {
		t.Fatalf("handler: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d audit lines, want 2: %q", len(lines), buf.String())
	}

	var first, second audit.Entry
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("line 0: %v", err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("line 1: %v", err)
	}
	if first.Tool != "graphql_query" || first.Result != "ok" {
		t.Errorf("first entry = %+v, want graphql_query ok", first)
	}
	if first.Params["backend"] != "datocms" {
		t.Errorf("first params = %v, want backend=datocms", first.Params)
	}
	if !strings.HasPrefix(second.Result, "error: unknown backend") {
		t.Errorf("second result = %q, want unknown backend error", second.Result)
	}
}
