package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Flarenzy/site-ipam/internal/storage"
)

var errInventoryProblems = errors.New("inventory has problems")

func newCheckCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report inventory records that break its rules",
		Long: `Report duplicate device names, gateways or DHCP pools outside their
subnet, and device addresses outside their VLAN. Exits non-zero when
anything is reported.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inventory, err := storage.NewYAMLRepository(c.inventory).Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("load inventory: %w", err)
			}

			err = inventory.Validate()
			if err == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "inventory ok")
				return nil
			}

			problems := []error{err}
			var joined interface{ Unwrap() []error }
			if errors.As(err, &joined) {
				problems = joined.Unwrap()
			}
			for _, p := range problems {
				fmt.Fprintf(cmd.OutOrStdout(), "- %v\n", p)
			}
			return fmt.Errorf("%w: %d found", errInventoryProblems, len(problems))
		},
	}
}
