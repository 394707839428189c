package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Flarenzy/site-ipam/internal/domain"
)

// deviceFlags binds the device fields shared by add and update.
type deviceFlags struct {
	name        string
	deviceType  string
	vlan        int
	ip          string
	port        string
	sw          string
	status      string
	role        string
	description string
	extra       map[string]string
}

func (f *deviceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "device name")
	cmd.Flags().StringVar(&f.deviceType, "type", "", "device type")
	cmd.Flags().IntVar(&f.vlan, "vlan", 0, "VLAN id")
	cmd.Flags().StringVar(&f.ip, "ip", "", `address, or "dhcp"`)
	cmd.Flags().StringVar(&f.port, "port", "", "switch port")
	cmd.Flags().StringVar(&f.sw, "switch", "", "switch name")
	cmd.Flags().StringVar(&f.status, "status", "", "device status")
	cmd.Flags().StringVar(&f.role, "role", "", "device role")
	cmd.Flags().StringVar(&f.description, "description", "", "free-form description")
	cmd.Flags().StringToStringVar(&f.extra, "extra", nil, "additional key=value fields")
}

func (f *deviceFlags) extraFields() map[string]any {
	if len(f.extra) == 0 {
		return nil
	}
	out := make(map[string]any, len(f.extra))
	for k, v := range f.extra {
		out[k] = v
	}
	return out
}

func (f *deviceFlags) device() domain.Device {
	return domain.Device{
		Name:        f.name,
		Type:        f.deviceType,
		Vlan:        domain.VlanID(f.vlan),
		IP:          f.ip,
		Port:        f.port,
		Switch:      f.sw,
		Status:      f.status,
		Role:        f.role,
		Description: f.description,
		Extra:       f.extraFields(),
	}
}

// update sets only the fields given on the command line.
func (f *deviceFlags) update(cmd *cobra.Command) domain.DeviceUpdate {
	changed := cmd.Flags().Changed
	pick := func(flag string, v *string) *string {
		if changed(flag) {
			return v
		}
		return nil
	}

	u := domain.DeviceUpdate{
		Name:        pick("name", &f.name),
		Type:        pick("type", &f.deviceType),
		IP:          pick("ip", &f.ip),
		Port:        pick("port", &f.port),
		Switch:      pick("switch", &f.sw),
		Status:      pick("status", &f.status),
		Role:        pick("role", &f.role),
		Description: pick("description", &f.description),
		Extra:       f.extraFields(),
	}
	if changed("vlan") {
		id := domain.VlanID(f.vlan)
		u.Vlan = &id
	}
	return u
}

func newAddCmd(c *cli) *cobra.Command {
	var flags deviceFlags

	cmd := &cobra.Command{
		Use:   "add <site>",
		Short: "Add a device to a site",
		Long: `Add a device to a site. A literal address must be a usable host of the
device's VLAN subnet when the site declares that VLAN.

  ipamctl add hq --name srv-02 --type server --vlan 20 --ip 10.10.20.11 \
    --port Gi1/0/2 --switch sw-hq-01 --status active --extra rack=R2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.service(cmd.Context())
			if err != nil {
				return err
			}
			device, err := svc.AddDevice(cmd.Context(), args[0], flags.device())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s) to %s\n", device.Name, device.IP, device.Site)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newUpdateCmd(c *cli) *cobra.Command {
	var flags deviceFlags

	cmd := &cobra.Command{
		Use:   "update <site> <name>",
		Short: "Change fields of a device",
		Long: `Change the given fields of a device. Flags that are not set keep their
current value; --extra keys are merged into the existing ones.

  ipamctl update hq srv-01 --status maintenance`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.service(cmd.Context())
			if err != nil {
				return err
			}
			device, err := svc.UpdateDevice(cmd.Context(), args[0], args[1], flags.update(cmd))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %s in %s\n", device.Name, device.Site)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newDeleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <site> <name>",
		Short: "Remove a device from a site",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.service(cmd.Context())
			if err != nil {
				return err
			}
			if err := svc.DeleteDevice(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s from %s\n", args[1], args[0])
			return nil
		},
	}
}
