package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/datasource/pkg/logger"
)

func newSeedCmd(c *cli) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write data source and credential records from a YAML file",
		Long: `Seed reads a YAML fixture with credentials and dataSources lists and writes
them to the selected store. Passwords are encrypted when DATA_SOURCE_APP_KEY and
DATA_SOURCE_WORKSPACE_KEY are set. Records without an id get a random one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fixture, err := ReadFixtureFile(file)
			if err != nil {
				return err
			}

			store, closeStore, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			objs, err := fixture.Apply(cmd.Context(), store)
			if err != nil {
				return err
			}
			for _, obj := range objs {
				c.log.Info("record written", logger.Object(obj.Type, obj.ID))
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", obj.Type, obj.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to the YAML fixture")
	if err := cmd.MarkFlagRequired("file"); err != nil {
		panic(err)
	}
	return cmd
}
