package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/datasource/pkg/secrets"
)

func newKeygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Print a fresh pair of credential encryption keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range []string{"DATA_SOURCE_APP_KEY", "DATA_SOURCE_WORKSPACE_KEY"} {
				key, err := secrets.GenerateKey()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", name, secrets.EncodeKey(key))
			}
			return nil
		},
	}
}
