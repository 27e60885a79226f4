package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jamesprial/confcms-mcp/internal/config"
	"github.com/jamesprial/confcms-mcp/internal/graphql"
)

// CMSProvider implements Provider against the two GraphQL backends: speakers
// and sponsors come from DatoCMS, stages and jobs from the Content Hub.
type CMSProvider struct {
	cms   graphql.Client
	hub   graphql.Client
	types config.ContentConfig
}

// NewCMSProvider returns a CMSProvider using cms for DatoCMS and hub for the
// Content Hub. The type identifiers in types are checked on each call, so a
// missing identifier only breaks the accessor that needs it.
func NewCMSProvider(cms, hub graphql.Client, types config.ContentConfig) *CMSProvider {
	if cms == nil || hub == nil {
		panic("graphql clients must not be nil")
	}
	return &CMSProvider{cms: cms, hub: hub, types: types}
}

// ErrIncompleteResponse is returned when the data object lacks the field a
// query selected, or carries null in its place.
var ErrIncompleteResponse = errors.New("content: incomplete response")

// GetAllSpeakers returns up to 100 speakers exactly as DatoCMS sends them.
func (p *CMSProvider) GetAllSpeakers(ctx context.Context) ([]Speaker, error) {
	var speakers *[]Speaker
	if err := runFixed(ctx, p.cms, speakersQuery, "allSpeakers", &speakers); err != nil {
		return nil, fmt.Errorf("content: speakers: %w", err)
	}
	return nonNil(*speakers), nil
}

// GetAllStages returns up to 100 stages ordered by content name. Each stage
// carries an empty schedule.
func (p *CMSProvider) GetAllStages(ctx context.Context) ([]Stage, error) {
	q, err := stagesQuery(p.types.StageTypeID)
	if err != nil {
		return nil, fmt.Errorf("content: stages: %w", err)
	}

	var page *struct {
		Results *[]Stage `json:"results"`
	}
	if err := run(ctx, p.hub, q, "allStages", &page); err != nil {
		return nil, fmt.Errorf("content: stages: %w", err)
	}
	if page.Results == nil {
		return nil, fmt.Errorf("content: stages: %w: allStages.results", ErrIncompleteResponse)
	}

	stages := nonNil(*page.Results)
	for i := range stages {
		stages[i].Schedule = []ScheduleEntry{}
	}
	return stages, nil
}

// GetAllSponsors returns up to 100 sponsors ordered by tier rank, exactly as
// DatoCMS sends them.
func (p *CMSProvider) GetAllSponsors(ctx context.Context) ([]Sponsor, error) {
	var sponsors *[]Sponsor
	if err := runFixed(ctx, p.cms, sponsorsQuery, "allCompanies", &sponsors); err != nil {
		return nil, fmt.Errorf("content: sponsors: %w", err)
	}
	return nonNil(*sponsors), nil
}

// GetAllJobs returns up to 100 job postings ordered by content name.
func (p *CMSProvider) GetAllJobs(ctx context.Context) ([]Job, error) {
	q, err := jobsQuery(p.types.JobPostingTypeID)
	if err != nil {
		return nil, fmt.Errorf("content: jobs: %w", err)
	}

	var page *struct {
		Results *[]Job `json:"results"`
	}
	if err := run(ctx, p.hub, q, "allJobs", &page); err != nil {
		return nil, fmt.Errorf("content: jobs: %w", err)
	}
	if page.Results == nil {
		return nil, fmt.Errorf("content: jobs: %w: allJobs.results", ErrIncompleteResponse)
	}
	return nonNil(*page.Results), nil
}

// runFixed checks that the constant query q selects root before running it.
func runFixed(ctx context.Context, client graphql.Client, q, root string, out any) error {
	if err := checkQuery(q, root, root); err != nil {
		return err
	}
	return run(ctx, client, q, root, out)
}

// run executes q on client and decodes the root field of the data object into
// out, which must be a pointer to a pointer. A missing or null root field is
// ErrIncompleteResponse, so *out is non-nil on success.
func run(ctx context.Context, client graphql.Client, q, root string, out any) error {
	raw, err := client.Execute(ctx, q, nil)
	if err != nil {
		return err
	}
	var data map[string]json.RawMessage
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	field, ok := data[root]
	if !ok || string(field) == "null" {
		return fmt.Errorf("%w: %s", ErrIncompleteResponse, root)
	}
	if err := json.Unmarshal(field, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Compile-time interface check.
var _ Provider = (*CMSProvider)(nil)
