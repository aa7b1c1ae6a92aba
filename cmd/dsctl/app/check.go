package app

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/datasource/pkg/clientpool"
	"github.com/dmitrymomot/datasource/pkg/config"
	"github.com/dmitrymomot/datasource/pkg/opensearch"
	"github.com/dmitrymomot/datasource/pkg/savedobjects"
)

func newCheckCmd(c *cli) *cobra.Command {
	var (
		file    string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "check DATA_SOURCE_ID...",
		Short: "Resolve data sources through the client pool and ping their clusters",
		Long: `Check asks the client pool for a client for every given data source id and
calls the cluster info endpoint with it. With --file the fixture is loaded into
the store first, which makes --store memory usable without a database.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, closeStore, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			if file != "" {
				fixture, err := ReadFixtureFile(file)
				if err != nil {
					return err
				}
				if _, err := fixture.Apply(ctx, store); err != nil {
					return err
				}
			}

			cfg, err := config.Load[clientpool.Config]()
			if err != nil {
				return err
			}
			pool, err := clientpool.New(cfg, clientpool.WithLogger(c.log))
			if err != nil {
				return err
			}
			defer pool.Close()

			getter := savedobjects.WithLogging(store, c.log)
			var failed int
			for _, id := range args {
				if err := checkOne(cmd, pool, getter, id, timeout); err != nil {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "%s\tFAIL\t%v\n", id, err)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d data sources failed", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Seed the store from this YAML fixture before checking")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Timeout for each cluster request")
	return cmd
}

func checkOne(cmd *cobra.Command, pool *clientpool.Pool, store savedobjects.Getter, id string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	client, err := pool.GetClient(ctx, id, store)
	if err != nil {
		return err
	}
	if err := opensearch.Healthcheck(client.Client)(ctx); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\tOK\t%s\n", id, client.Endpoint())
	return nil
}
