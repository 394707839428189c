// Package planner derives the fixed addressing plan used for new VLANs at the
// HQ and Branch sites.
package planner

import (
	"fmt"
	"net"
	"net/netip"
	"strings"

	"go4.org/netipx"

	"github.com/Flarenzy/site-ipam/internal/domain"
)

// NotApplicable fills the DHCP fields of VLANs without a pool.
const NotApplicable = "N/A"

// UsableIPs is reported for every plan. It is a fixed figure for a /24 and
// does not account for the gateway or the DHCP pool.
const UsableIPs = 254

const (
	clientsVlan domain.VlanID = 50
	prefixBits                = 24
)

var vlanNames = map[domain.VlanID]string{
	10: "Hypervisor",
	20: "Server",
	30: "Backup",
	40: "Management",
	50: "Clients",
}

// Site is a planning site code.
type Site string

const (
	HQ     Site = "HQ"
	Branch Site = "BRANCH"
)

func (s Site) octet() byte {
	if s == HQ {
		return 10
	}
	return 20
}

// ParseSite accepts HQ or Branch in any case.
func ParseSite(s string) (Site, error) {
	switch site := Site(strings.ToUpper(strings.TrimSpace(s))); site {
	case HQ, Branch:
		return site, nil
	default:
		return "", fmt.Errorf("%w: unknown site %q, expected HQ or Branch", domain.ErrInvalidInput, s)
	}
}

type AddressSummary struct {
	VlanID      domain.VlanID `json:"vlan_id"`
	VlanName    string        `json:"vlan_name"`
	Site        string        `json:"site"`
	Subnet      string        `json:"subnet"`
	SubnetMask  string        `json:"subnet_mask"`
	CIDR        string        `json:"cidr"`
	Gateway     string        `json:"gateway"`
	FirstUsable string        `json:"first_usable"`
	LastUsable  string        `json:"last_usable"`
	Broadcast   string        `json:"broadcast"`
	DHCPStart   string        `json:"dhcp_start"`
	DHCPEnd     string        `json:"dhcp_end"`
	UsableIPs   int           `json:"usable_ips"`
}

// VlanIDs lists the VLANs the plan knows about, ascending.
func VlanIDs() []domain.VlanID {
	return []domain.VlanID{10, 20, 30, 40, 50}
}

// VlanName returns the label of id, or "Unknown".
func VlanName(id domain.VlanID) string {
	if name, ok := vlanNames[id]; ok {
		return name
	}
	return "Unknown"
}

// Plan lays out 10.<site>.<vlan>.0/24 for a known VLAN. Any site other than
// HQ is planned as a branch.
func Plan(id domain.VlanID, site string) (AddressSummary, error) {
	if _, ok := vlanNames[id]; !ok {
		return AddressSummary{}, fmt.Errorf("%w: unknown vlan %d", domain.ErrInvalidInput, id)
	}

	code := Site(strings.ToUpper(site))
	prefix := netip.PrefixFrom(netip.AddrFrom4([4]byte{10, code.octet(), byte(id), 0}), prefixBits)
	r := netipx.RangeOfPrefix(prefix)
	gateway := r.From().Next()
	broadcast := r.To()

	summary := AddressSummary{
		VlanID:      id,
		VlanName:    VlanName(id),
		Site:        string(code),
		Subnet:      prefix.Addr().String(),
		SubnetMask:  net.IP(net.CIDRMask(prefixBits, 32)).String(),
		CIDR:        prefix.String(),
		Gateway:     gateway.String(),
		FirstUsable: gateway.Next().String(),
		LastUsable:  broadcast.Prev().String(),
		Broadcast:   broadcast.String(),
		DHCPStart:   NotApplicable,
		DHCPEnd:     NotApplicable,
		UsableIPs:   UsableIPs,
	}

	if id == clientsVlan {
		base := prefix.Addr().As4()
		base[3] = 50
		summary.DHCPStart = netip.AddrFrom4(base).String()
		base[3] = 150
		summary.DHCPEnd = netip.AddrFrom4(base).String()
	}

	return summary, nil
}
