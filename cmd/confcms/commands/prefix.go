package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jamesprial/confcms-mcp/internal/content"
)

func prefixCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prefix <type-id>",
		Short: "Print the Content Hub field prefix for a content type identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix, err := content.FieldPrefix(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), prefix)
			return err
		},
	}
}
