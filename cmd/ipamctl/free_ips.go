package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFreeIPsCmd(c *cli) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "free-ips <site> <vlan>",
		Short: "List unassigned addresses of a VLAN",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseVlanArg(args[1])
			if err != nil {
				return err
			}
			svc, err := c.service(cmd.Context())
			if err != nil {
				return err
			}
			free, err := svc.FreeAddresses(cmd.Context(), id, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			vlan, ok, err := svc.GetVlan(cmd.Context(), id, args[0])
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(out, "vlan %d is not defined in site %s\n", id, args[0])
				return nil
			}
			fmt.Fprintf(out, "VLAN %d %s (%s): %d free\n", vlan.ID, vlan.Name, vlan.Subnet, len(free))

			shown := free
			if limit > 0 && len(shown) > limit {
				shown = shown[:limit]
			}
			for _, ip := range shown {
				fmt.Fprintln(out, ip)
			}
			if len(shown) < len(free) {
				fmt.Fprintf(out, "... %d more\n", len(free)-len(shown))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "show at most this many addresses (0 shows all)")
	return cmd
}
