package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jamesprial/confcms-mcp/internal/content"
)

// listCmd builds a subcommand that prints the list returned by fetch as JSON.
// fetch runs after the root command has built the provider.
func listCmd[T any](c *cli, use, short string, fetch func(ctx context.Context) ([]T, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()

			items, err := fetch(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd, items)
		},
	}
}

func (c *cli) speakersCmd() *cobra.Command {
	return listCmd(c, "speakers", "Print all speakers from DatoCMS",
		func(ctx context.Context) ([]content.Speaker, error) { return c.provider.GetAllSpeakers(ctx) })
}

func (c *cli) stagesCmd() *cobra.Command {
	return listCmd(c, "stages", "Print all stages from the Content Hub",
		func(ctx context.Context) ([]content.Stage, error) { return c.provider.GetAllStages(ctx) })
}

func (c *cli) sponsorsCmd() *cobra.Command {
	return listCmd(c, "sponsors", "Print all sponsors from DatoCMS by tier rank",
		func(ctx context.Context) ([]content.Sponsor, error) { return c.provider.GetAllSponsors(ctx) })
}

func (c *cli) jobsCmd() *cobra.Command {
	return listCmd(c, "jobs", "Print all job postings from the Content Hub",
		func(ctx context.Context) ([]content.Job, error) { return c.provider.GetAllJobs(ctx) })
}
