package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/netip"
	"reflect"
	"strconv"
)

// DHCPSentinel marks a device whose address is assigned dynamically.
const DHCPSentinel = "dhcp"

type VlanID int

type DHCPPool struct {
	Start string `yaml:"start" json:"start"`
	End   string `yaml:"end" json:"end"`
}

type Vlan struct {
	ID       VlanID    `yaml:"id" json:"id"`
	Name     string    `yaml:"name,omitempty" json:"name,omitempty"`
	Subnet   string    `yaml:"subnet" json:"subnet"`
	Gateway  string    `yaml:"gateway,omitempty" json:"gateway,omitempty"`
	DHCPPool *DHCPPool `yaml:"dhcp_pool,omitempty" json:"dhcp_pool,omitempty"`
}

type Device struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Vlan        VlanID `yaml:"vlan"`
	IP          string `yaml:"ip"`
	Port        string `yaml:"port"`
	Switch      string `yaml:"switch"`
	Status      string `yaml:"status"`
	Role        string `yaml:"role,omitempty"`
	Description string `yaml:"description,omitempty"`

	// Site is the owning site key. It is filled in on reads and never stored.
	Site string `yaml:"-"`

	// Extra holds any additional keys found in the inventory file.
	Extra map[string]any `yaml:",inline"`
}

// IsDHCP reports whether the device has no literal address.
func (d Device) IsDHCP() bool {
	return d.IP == DHCPSentinel
}

// Fields flattens the device into the keys it actually carries.
func (d Device) Fields() map[string]string {
	out := make(map[string]string, 10+len(d.Extra))
	for k, v := range d.Extra {
		if v == nil {
			continue
		}
		out[k] = formatExtra(v)
	}
	set := func(key, value string) {
		if value != "" {
			out[key] = value
		}
	}
	set("name", d.Name)
	set("type", d.Type)
	if d.Vlan != 0 {
		out["vlan"] = strconv.Itoa(int(d.Vlan))
	}
	set("ip", d.IP)
	set("port", d.Port)
	set("switch", d.Switch)
	set("status", d.Status)
	set("role", d.Role)
	set("description", d.Description)
	set("site", d.Site)
	return out
}

// formatExtra renders an extra value as text. Maps, slices and structs are
// written as JSON so they survive a CSV round trip.
func formatExtra(v any) string {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		if b, err := json.Marshal(v); err == nil {
			return string(b)
		}
	}
	return fmt.Sprint(v)
}

type Site struct {
	Key     string   `json:"key"`
	Vlans   []Vlan   `json:"vlans"`
	Devices []Device `json:"devices"`
}

// Vlan returns the first VLAN in the site with the given id.
func (s Site) Vlan(id VlanID) (Vlan, bool) {
	for _, v := range s.Vlans {
		if v.ID == id {
			return v, true
		}
	}
	return Vlan{}, false
}

func (s Site) deviceIndex(name string) int {
	for i, d := range s.Devices {
		if d.Name == name {
			return i
		}
	}
	return -1
}

// Inventory is the whole device inventory, sites in file order.
type Inventory struct {
	Sites []Site
}

func (inv *Inventory) site(key string) (*Site, bool) {
	for i := range inv.Sites {
		if inv.Sites[i].Key == key {
			return &inv.Sites[i], true
		}
	}
	return nil, false
}

// Validate reports every stored record that breaks the inventory invariants:
// duplicate device names within a site, gateways or DHCP pools outside their
// subnet, and literal device addresses outside their VLAN's subnet.
func (inv Inventory) Validate() error {
	var errs []error
	for _, site := range inv.Sites {
		seen := make(map[string]struct{}, len(site.Devices))
		for _, d := range site.Devices {
			if _, dup := seen[d.Name]; dup {
				errs = append(errs, fmt.Errorf("site %s: duplicate device name %q", site.Key, d.Name))
			}
			seen[d.Name] = struct{}{}
		}

		for _, v := range site.Vlans {
			if err := v.validate(); err != nil {
				errs = append(errs, fmt.Errorf("site %s: %w", site.Key, err))
			}
		}

		for _, d := range site.Devices {
			v, ok := site.Vlan(d.Vlan)
			if !ok || d.IP == "" || d.IsDHCP() {
				continue
			}
			if err := checkDeviceAddress(v, d.IP); err != nil {
				errs = append(errs, fmt.Errorf("site %s: device %s: %w", site.Key, d.Name, err))
			}
		}
	}
	return errors.Join(errs...)
}

func (v Vlan) prefix() (netip.Prefix, error) {
	prefix, err := netip.ParsePrefix(v.Subnet)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("%w: vlan %d subnet %q", ErrParse, v.ID, v.Subnet)
	}
	return prefix.Masked(), nil
}

func (v Vlan) validate() error {
	prefix, err := v.prefix()
	if err != nil {
		return err
	}

	if v.Gateway != "" {
		gw, err := parseAddr(v.Gateway)
		if err != nil {
			return err
		}
		if !prefix.Contains(gw) {
			return fmt.Errorf("%w: vlan %d gateway %s outside %s", ErrInvalidInput, v.ID, gw, prefix)
		}
	}

	if v.DHCPPool != nil {
		pool, err := v.DHCPPool.Range()
		if err != nil {
			return err
		}
		if !prefix.Contains(pool.From()) || !prefix.Contains(pool.To()) {
			return fmt.Errorf("%w: vlan %d dhcp pool %s outside %s", ErrInvalidInput, v.ID, pool, prefix)
		}
	}
	return nil
}

func parseAddr(s string) (netip.Addr, error) {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("%w: address %q", ErrParse, s)
	}
	return addr, nil
}
