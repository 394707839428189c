package domain

// DeviceFilter narrows ListDevices. Zero-valued fields do not filter.
type DeviceFilter struct {
	Site string
	Vlan VlanID
	Type string
}

// DeviceUpdate carries the fields to merge into an existing device.
// Nil fields are left untouched.
type DeviceUpdate struct {
	Name        *string
	Type        *string
	Vlan        *VlanID
	IP          *string
	Port        *string
	Switch      *string
	Status      *string
	Role        *string
	Description *string
	Extra       map[string]any
}
