package commands

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jamesprial/confcms-mcp/internal/config"
	"github.com/jamesprial/confcms-mcp/internal/content"
	"github.com/jamesprial/confcms-mcp/internal/graphql"
)

// providerFactory builds the content provider from the loaded configuration.
type providerFactory func(cfg *config.Config) content.Provider

// cli holds state shared by the root command and its subcommands.
type cli struct {
	newProvider providerFactory

	configPath string
	timeout    time.Duration
	verbose    bool

	provider content.Provider
}

func Execute() error {
	return newRootCmd(defaultProvider).Execute()
}

func defaultProvider(cfg *config.Config) content.Provider {
	backends := graphql.NewBackends(cfg)
	return content.NewCMSProvider(
		backends[graphql.BackendDatoCMS],
		backends[graphql.BackendContentHub],
		cfg.Content,
	)
}

func newRootCmd(newProvider providerFactory) *cobra.Command {
	c := &cli{newProvider: newProvider}

	root := &cobra.Command{
		Use:          "confcms",
		Short:        "Query conference content from DatoCMS and the Sitecore Content Hub",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !c.verbose {
				log.SetOutput(io.Discard)
			}
			cfg, err := c.loadConfig(cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}
			config.ApplyEnvOverrides(cfg)
			c.provider = c.newProvider(cfg)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $CONFCMS_CONFIG_PATH, then /config/config.yaml)")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", 30*time.Second, "overall deadline for backend requests")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log backend errors to stderr")

	root.AddCommand(
		c.speakersCmd(),
		c.stagesCmd(),
		c.sponsorsCmd(),
		c.jobsCmd(),
		c.snapshotCmd(),
		prefixCmd(),
	)
	return root
}

// loadConfig reads the config file. A missing default file falls back to
// DefaultConfig; a file named with --config must exist.
func (c *cli) loadConfig(explicit bool) (*config.Config, error) {
	path := c.configPath
	if path == "" {
		path = os.Getenv("CONFCMS_CONFIG_PATH")
	}
	if path == "" {
		path = "/config/config.yaml"
	}

	cfg, err := config.LoadConfig(path)
	if err == nil {
		return cfg, nil
	}
	if explicit || !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return config.DefaultConfig(), nil
}

func (c *cli) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), c.timeout)
}

// printJSON writes v to the command's output as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
