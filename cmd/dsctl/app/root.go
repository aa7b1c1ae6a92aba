// Package app wires the dsctl commands.
package app

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/datasource/pkg/config"
	"github.com/dmitrymomot/datasource/pkg/logger"
)

// cli carries state shared by every subcommand.
type cli struct {
	envFile string
	store   string
	debug   bool
	log     *slog.Logger
}

// NewRootCmd builds the dsctl command tree.
func NewRootCmd() *cobra.Command {
	c := &cli{log: logger.Nop()}

	root := &cobra.Command{
		Use:               "dsctl",
		Short:             "Manage OpenSearch data source records",
		Long:              `dsctl writes data source and credential records to a record store and checks that the pool can reach the clusters they describe.`,
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.init(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.envFile, "env-file", "", "Load environment variables from this file (default ./.env if present)")
	flags.StringVar(&c.store, "store", storeMemory, "Record store: memory, postgres, mongo or redis")
	flags.BoolVar(&c.debug, "debug", false, "Enable debug logging")

	root.AddCommand(
		newSeedCmd(c),
		newCheckCmd(c),
		newMigrateCmd(c),
		newKeygenCmd(),
	)
	return root
}

func (c *cli) init(cmd *cobra.Command) error {
	var err error
	if c.envFile != "" {
		err = config.LoadEnv(c.envFile)
	} else {
		err = config.LoadEnv()
	}
	if err != nil {
		return err
	}

	logCfg, err := config.Load[logger.Config]()
	if err != nil {
		return err
	}
	opts := append(logger.FromConfig(logCfg), logger.WithOutput(cmd.ErrOrStderr()))
	if c.debug {
		opts = append(opts, logger.WithLevel(slog.LevelDebug))
	}
	c.log = logger.New(opts...)
	return nil
}
