package commands

import (
	"github.com/spf13/cobra"

	"github.com/jamesprial/confcms-mcp/internal/content"
)

func (c *cli) snapshotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot",
		Short: "Print speakers, stages, sponsors and jobs as one JSON object",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()

			snap, err := content.FetchSnapshot(ctx, c.provider)
			if err != nil {
				return err
			}
			return printJSON(cmd, snap)
		},
	}
}
