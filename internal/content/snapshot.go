package content

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Snapshot holds every content list fetched in one pass.
type Snapshot struct {
	Speakers []Speaker `json:"speakers"`
	Stages   []Stage   `json:"stages"`
	Sponsors []Sponsor `json:"sponsors"`
	Jobs     []Job     `json:"jobs"`
}

// FetchSnapshot calls all four accessors of p concurrently. The first error
// cancels the remaining calls and is returned.
func FetchSnapshot(ctx context.Context, p Provider) (*Snapshot, error) {
	g, ctx := errgroup.WithContext(ctx)

	var s Snapshot
	g.Go(func() (err error) {
		s.Speakers, err = p.GetAllSpeakers(ctx)
		return err
	})
	g.Go(func() (err error) {
		s.Stages, err = p.GetAllStages(ctx)
		return err
	})
	g.Go(func() (err error) {
		s.Sponsors, err = p.GetAllSponsors(ctx)
		return err
	})
	g.Go(func() (err error) {
		s.Jobs, err = p.GetAllJobs(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &s, nil
}
