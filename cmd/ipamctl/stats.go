package main

import (
	"cmp"
	"fmt"
	"io"
	"maps"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newStatsCmd(c *cli) *cobra.Command {
	var site string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize devices by type, VLAN and status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.service(cmd.Context())
			if err != nil {
				return err
			}
			stats, err := svc.Statistics(cmd.Context(), site)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Total devices:\t%d\n", stats.TotalDevices)
			fmt.Fprintf(w, "Static:\t%d\n", stats.StaticDevices)
			fmt.Fprintf(w, "DHCP:\t%d\n", stats.DHCPDevices)
			writeCounts(w, "By type", stats.ByType)
			writeCounts(w, "By VLAN", stats.ByVlan)
			writeCounts(w, "By status", stats.ByStatus)
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&site, "site", "", "only devices of this site")
	return cmd
}

func writeCounts[K cmp.Ordered](w io.Writer, title string, counts map[K]int) {
	fmt.Fprintf(w, "%s:\t\n", title)
	for _, k := range slices.Sorted(maps.Keys(counts)) {
		fmt.Fprintf(w, "  %v\t%d\n", k, counts[k])
	}
}
