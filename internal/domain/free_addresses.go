package domain

import (
	"fmt"
	"net/netip"

	"go4.org/netipx"
)

// maxHostBits caps how many host addresses FreeAddresses will enumerate.
const maxHostBits = 16

// Range returns the inclusive address range of the pool.
func (p DHCPPool) Range() (netipx.IPRange, error) {
	start, err := parseAddr(p.Start)
	if err != nil {
		return netipx.IPRange{}, err
	}
	end, err := parseAddr(p.End)
	if err != nil {
		return netipx.IPRange{}, err
	}
	if start.BitLen() != end.BitLen() || end.Less(start) {
		return netipx.IPRange{}, fmt.Errorf("%w: dhcp pool %s-%s", ErrInvalidRange, start, end)
	}
	return netipx.IPRangeFrom(start, end), nil
}

// hostRange returns the host addresses of prefix. IPv4 networks drop the
// network and broadcast addresses except for /31 and /32; IPv6 networks drop
// the subnet-router anycast address except for /127 and /128.
func hostRange(prefix netip.Prefix) netipx.IPRange {
	r := netipx.RangeOfPrefix(prefix)
	hostBits := prefix.Addr().BitLen() - prefix.Bits()
	if hostBits <= 1 {
		return r
	}
	if prefix.Addr().Is4() {
		return netipx.IPRangeFrom(r.From().Next(), r.To().Prev())
	}
	return netipx.IPRangeFrom(r.From().Next(), r.To())
}

// freeAddresses lists the host addresses of vlan's subnet that are not held
// by a device, the gateway or the DHCP pool, in ascending order.
func freeAddresses(vlan Vlan, devices []Device) ([]string, error) {
	prefix, err := vlan.prefix()
	if err != nil {
		return nil, err
	}
	if hostBits := prefix.Addr().BitLen() - prefix.Bits(); hostBits > maxHostBits {
		return nil, fmt.Errorf("%w: subnet %s too large to enumerate", ErrInvalidInput, prefix)
	}

	var b netipx.IPSetBuilder
	b.AddRange(hostRange(prefix))

	for _, d := range devices {
		if d.IP == "" || d.IsDHCP() {
			continue
		}
		addr, err := parseAddr(d.IP)
		if err != nil {
			return nil, fmt.Errorf("device %s: %w", d.Name, err)
		}
		b.Remove(addr)
	}

	if vlan.Gateway != "" {
		gw, err := parseAddr(vlan.Gateway)
		if err != nil {
			return nil, fmt.Errorf("gateway: %w", err)
		}
		b.Remove(gw)
	}

	if vlan.DHCPPool != nil {
		pool, err := vlan.DHCPPool.Range()
		if err != nil {
			return nil, err
		}
		b.RemoveRange(pool)
	}

	set, err := b.IPSet()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	out := make([]string, 0)
	for _, r := range set.Ranges() {
		for addr := r.From(); ; addr = addr.Next() {
			out = append(out, addr.String())
			if addr == r.To() {
				break
			}
		}
	}
	return out, nil
}

// checkDeviceAddress verifies that ip is a usable host address of vlan.
func checkDeviceAddress(vlan Vlan, ip string) error {
	prefix, err := vlan.prefix()
	if err != nil {
		return err
	}
	addr, err := parseAddr(ip)
	if err != nil {
		return err
	}
	if err := validateIPInSubnet(prefix, addr); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidInput, addr, err)
	}
	return nil
}

func validateIPInSubnet(prefix netip.Prefix, ip netip.Addr) error {
	if !prefix.Contains(ip) {
		return fmt.Errorf("ip not in subnet %s", prefix)
	}

	if !hostRange(prefix).Contains(ip) {
		if ip.Is4() {
			return fmt.Errorf("network or broadcast ip")
		}
		return fmt.Errorf("subnet-router anycast ip")
	}

	return nil
}
