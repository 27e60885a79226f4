package content

import (
	"context"
	"fmt"
	"time"

	"github.com/jamesprial/confcms-mcp/internal/audit"
	"github.com/jamesprial/confcms-mcp/internal/tools"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	toolNameSnapshot    = "content_snapshot"
	toolNameFieldPrefix = "content_field_prefix"
)

// ContentTools returns the MCP tool registrations for the content package.
// All content tools are read-only. filters hide entries from the tools only;
// the Provider itself is unfiltered.
func ContentTools(p Provider, filters Filters, logger *audit.Logger) []tools.Registration {
	return []tools.Registration{
		listTool(listSpec[Speaker]{
			name:        "speakers_list",
			description: "List conference speakers from DatoCMS with bio, social handles, talk and image URLs.",
			kind:        "speaker",
			keyArg:      "slug",
			fetch:       p.GetAllSpeakers,
			key:         func(s Speaker) string { return s.Slug },
			filter:      filters.Speakers,
		}, logger),
		listTool(listSpec[Stage]{
			name:        "stages_list",
			description: "List conference stages from the Content Hub with stream and Discord links.",
			kind:        "stage",
			keyArg:      "slug",
			fetch:       p.GetAllStages,
			key:         func(s Stage) string { return s.Slug },
			filter:      filters.Stages,
		}, logger),
		listTool(listSpec[Sponsor]{
			name:        "sponsors_list",
			description: "List sponsors from DatoCMS ordered by tier rank, with links, call to action and images.",
			kind:        "sponsor",
			keyArg:      "slug",
			fetch:       p.GetAllSponsors,
			key:         func(s Sponsor) string { return s.Slug },
			filter:      filters.Sponsors,
		}, logger),
		listTool(listSpec[Job]{
			name:        "jobs_list",
			description: "List job postings from the Content Hub.",
			kind:        "job",
			keyArg:      "id",
			fetch:       p.GetAllJobs,
			key:         func(j Job) string { return j.ID },
		}, logger),
		snapshotTool(p, filters, logger),
		fieldPrefixTool(logger),
	}
}

// listSpec describes one list tool over content of type T.
type listSpec[T any] struct {
	name        string
	description string
	kind        string
	keyArg      string
	fetch       func(context.Context) ([]T, error)
	key         func(T) string
	filter      *SlugFilter
}

func listTool[T any](def listSpec[T], logger *audit.Logger) tools.Registration {
	tool := mcp.NewTool(def.name,
		mcp.WithDescription(def.description),
		mcp.WithString(def.keyArg,
			mcp.Description(fmt.Sprintf("Optional %s %s. When set, only that %s is returned.", def.kind, def.keyArg, def.kind)),
		),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		want := req.GetString(def.keyArg, "")
		params := map[string]any{def.keyArg: want}

		items, err := def.fetch(ctx)
		if err != nil {
			tools.LogAudit(logger, def.name, params, "error: "+err.Error(), 0, start)
			return tools.ErrorResult(err.Error()), nil
		}
		items = applyFilter(items, def.filter, def.key)

		if want == "" {
			tools.LogAudit(logger, def.name, params, "ok", len(items), start)
			return tools.JSONResult(items), nil
		}
		for _, it := range items {
			if def.key(it) == want {
				tools.LogAudit(logger, def.name, params, "ok", 1, start)
				return tools.JSONResult(it), nil
			}
		}
		msg := fmt.Sprintf("no %s with %s %q", def.kind, def.keyArg, want)
		tools.LogAudit(logger, def.name, params, "error: "+msg, 0, start)
		return tools.ErrorResult(msg), nil
	}

	return tools.Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}

func snapshotTool(p Provider, filters Filters, logger *audit.Logger) tools.Registration {
	tool := mcp.NewTool(toolNameSnapshot,
		mcp.WithDescription("Fetch speakers, stages, sponsors and jobs in one call. Fails if any backend fails."),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		params := map[string]any{}

		snap, err := FetchSnapshot(ctx, p)
		if err != nil {
			tools.LogAudit(logger, toolNameSnapshot, params, "error: "+err.Error(), 0, start)
			return tools.ErrorResult(err.Error()), nil
		}
		snap.Speakers = applyFilter(snap.Speakers, filters.Speakers, func(s Speaker) string { return s.Slug })
		snap.Stages = applyFilter(snap.Stages, filters.Stages, func(s Stage) string { return s.Slug })
		snap.Sponsors = applyFilter(snap.Sponsors, filters.Sponsors, func(s Sponsor) string { return s.Slug })

		n := len(snap.Speakers) + len(snap.Stages) + len(snap.Sponsors) + len(snap.Jobs)
		tools.LogAudit(logger, toolNameSnapshot, params, "ok", n, start)
		return tools.JSONResult(snap), nil
	}

	return tools.Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}

// fieldPrefixResult is the payload of the content_field_prefix tool.
type fieldPrefixResult struct {
	TypeID      string `json:"type_id"`
	TypeName    string `json:"type_name"`
	FieldPrefix string `json:"field_prefix"`
}

func fieldPrefixTool(logger *audit.Logger) tools.Registration {
	tool := mcp.NewTool(toolNameFieldPrefix,
		mcp.WithDescription("Show the Content Hub root field and field prefix derived from a content type identifier, e.g. to check a STAGE_TYPE_ID value."),
		mcp.WithString("type_id",
			mcp.Required(),
			mcp.Description("Content Hub type identifier."),
		),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		typeID := req.GetString("type_id", "")
		params := map[string]any{"type_id": typeID}

		prefix, err := FieldPrefix(typeID)
		if err != nil {
			tools.LogAudit(logger, toolNameFieldPrefix, params, "error: "+err.Error(), 0, start)
			return tools.ErrorResult(err.Error()), nil
		}

		tools.LogAudit(logger, toolNameFieldPrefix, params, "ok", 0, start)
		return tools.JSONResult(fieldPrefixResult{
			TypeID:      typeID,
			TypeName:    contentHubTypeName(typeID),
			FieldPrefix: prefix,
		}), nil
	}

	return tools.Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}
