package main

import (
	"fmt"
	"maps"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Flarenzy/site-ipam/internal/domain"
)

func newDevicesCmd(c *cli) *cobra.Command {
	var (
		site       string
		vlan       int
		deviceType string
	)

	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List devices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.service(cmd.Context())
			if err != nil {
				return err
			}
			devices, err := svc.ListDevices(cmd.Context(), domain.DeviceFilter{
				Site: site,
				Vlan: domain.VlanID(vlan),
				Type: deviceType,
			})
			if err != nil {
				return err
			}
			if len(devices) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no devices found")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SITE\tNAME\tTYPE\tVLAN\tIP\tSWITCH\tPORT\tSTATUS")
			for _, d := range devices {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
					d.Site, d.Name, d.Type, d.Vlan, d.IP, d.Switch, d.Port, d.Status)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&site, "site", "", "only devices of this site")
	cmd.Flags().IntVar(&vlan, "vlan", 0, "only devices in this VLAN")
	cmd.Flags().StringVar(&deviceType, "type", "", "only devices of this type")
	return cmd
}

func newDeviceCmd(c *cli) *cobra.Command {
	var site string

	cmd := &cobra.Command{
		Use:   "device <name>",
		Short: "Show one device",
		Long: `Show every field of a device. Without --site the first device with
the name, in site order, is shown.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.service(cmd.Context())
			if err != nil {
				return err
			}
			device, err := svc.FindDevice(cmd.Context(), args[0], site)
			if err != nil {
				return err
			}

			fields := device.Fields()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, key := range slices.Sorted(maps.Keys(fields)) {
				fmt.Fprintf(w, "%s:\t%s\n", key, fields[key])
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&site, "site", "", "site to search")
	return cmd
}
