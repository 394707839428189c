package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Flarenzy/site-ipam/internal/domain"
	"github.com/Flarenzy/site-ipam/internal/planner"
)

func newPlanCmd(c *cli) *cobra.Command {
	var (
		vlan    int
		site    string
		log     bool
		logPath string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the address plan of a VLAN",
		Long: `Lay out 10.<site>.<vlan>.0/24 for one of the planned VLANs.

HQ uses 10.10.x.0/24 and Branch uses 10.20.x.0/24. VLAN 50 carries the
DHCP range .50 to .150.

  ipamctl plan --vlan 50 --site hq --log`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := planner.ParseSite(site)
			if err != nil {
				return err
			}
			summary, err := planner.Plan(domain.VlanID(vlan), string(code))
			if err != nil {
				return err
			}

			renderPlan(cmd.OutOrStdout(), summary)

			if !log {
				return nil
			}
			l := planner.NewLog(logPath).WithClock(c.now)
			if err := l.Append(summary); err != nil {
				return fmt.Errorf("append plan log: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logged to %s\n", l.Path())
			return nil
		},
	}

	cmd.Flags().IntVar(&vlan, "vlan", 0, "VLAN id (10, 20, 30, 40 or 50)")
	cmd.Flags().StringVar(&site, "site", "", "site code (HQ or Branch)")
	cmd.Flags().BoolVar(&log, "log", false, "append the plan to the CSV log")
	cmd.Flags().StringVar(&logPath, "log-file", envOr("PLAN_LOG_PATH", defaultPlanLogPath), "CSV log file")
	_ = cmd.MarkFlagRequired("vlan")
	_ = cmd.MarkFlagRequired("site")
	return cmd
}

func renderPlan(w io.Writer, s planner.AddressSummary) {
	r := lipgloss.NewRenderer(w)
	title := r.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	label := r.NewStyle().Width(14).Foreground(lipgloss.Color("241"))
	box := r.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)

	rows := [][2]string{
		{"Subnet", s.CIDR},
		{"Subnet mask", s.SubnetMask},
		{"Gateway", s.Gateway},
		{"First usable", s.FirstUsable},
		{"Last usable", s.LastUsable},
		{"Broadcast", s.Broadcast},
		{"Usable IPs", strconv.Itoa(s.UsableIPs)},
		{"DHCP start", s.DHCPStart},
		{"DHCP end", s.DHCPEnd},
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, title.Render(fmt.Sprintf("VLAN %d %s @ %s", s.VlanID, s.VlanName, s.Site)))
	for _, row := range rows {
		lines = append(lines, label.Render(row[0])+row[1])
	}
	fmt.Fprintln(w, box.Render(strings.Join(lines, "\n")))
}
