package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSitesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "sites",
		Short: "List sites in inventory order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.service(cmd.Context())
			if err != nil {
				return err
			}
			sites, err := svc.ListSites(cmd.Context())
			if err != nil {
				return err
			}
			for _, site := range sites {
				fmt.Fprintln(cmd.OutOrStdout(), site)
			}
			return nil
		},
	}
}
