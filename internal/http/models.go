package http

import (
	"github.com/Flarenzy/site-ipam/internal/domain"
)

// ErrorResponse is a simple envelope for error messages.
type ErrorResponse struct {
	Error string `json:"error" example:"device not found"`
}

// SitesResponse lists site keys in inventory order.
type SitesResponse struct {
	Sites []string `json:"sites" example:"hq,branch"`
}

type DHCPPoolResponse struct {
	Start string `json:"start" example:"10.10.50.50"`
	End   string `json:"end" example:"10.10.50.150"`
}

type VlanResponse struct {
	ID       int               `json:"id" example:"50"`
	Name     string            `json:"name,omitempty" example:"Clients"`
	Subnet   string            `json:"subnet" example:"10.10.50.0/24"`
	Gateway  string            `json:"gateway,omitempty" example:"10.10.50.1"`
	DHCPPool *DHCPPoolResponse `json:"dhcp_pool,omitempty"`
}

// DeviceResponse is a device as returned to clients, annotated with its site.
type DeviceResponse struct {
	Name        string         `json:"name" example:"srv-01"`
	Type        string         `json:"type" example:"server"`
	Vlan        int            `json:"vlan" example:"20"`
	IP          string         `json:"ip" example:"10.10.20.10"`
	Port        string         `json:"port" example:"Gi1/0/1"`
	Switch      string         `json:"switch" example:"sw-hq-01"`
	Status      string         `json:"status" example:"active"`
	Role        string         `json:"role,omitempty" example:"web"`
	Description string         `json:"description,omitempty" example:"Intranet web server"`
	Site        string         `json:"site" example:"hq"`
	Extra       map[string]any `json:"extra,omitempty"`
}

type DevicesResponse struct {
	Devices []DeviceResponse `json:"devices"`
	Count   int              `json:"count" example:"1"`
}

type SiteResponse struct {
	Key     string           `json:"key" example:"hq"`
	Vlans   []VlanResponse   `json:"vlans"`
	Devices []DeviceResponse `json:"devices"`
}

// CreateDeviceRequest is the payload accepted when adding a device to a site.
// Fields beyond the named ones go in extra; unknown top-level keys are rejected.
type CreateDeviceRequest struct {
	Name        string `json:"name" example:"srv-02" validate:"required"`
	Type        string `json:"type" example:"server" validate:"required"`
	Vlan        int    `json:"vlan" example:"20" validate:"required"`
	IP          string `json:"ip" example:"10.10.20.11" validate:"required"`
	Port        string `json:"port" example:"Gi1/0/2" validate:"required"`
	Switch      string `json:"switch" example:"sw-hq-01" validate:"required"`
	Status      string `json:"status" example:"active" validate:"required"`
	Role        string `json:"role,omitempty" example:"db"`
	Description string `json:"description,omitempty"`
	// Additional inventory fields such as rack or asset tag. Keys may not repeat a named field.
	Extra map[string]any `json:"extra,omitempty"`
}

// UpdateDeviceRequest carries only the fields to change.
type UpdateDeviceRequest struct {
	Name        *string        `json:"name,omitempty" example:"srv-02"`
	Type        *string        `json:"type,omitempty"`
	Vlan        *int           `json:"vlan,omitempty"`
	IP          *string        `json:"ip,omitempty"`
	Port        *string        `json:"port,omitempty"`
	Switch      *string        `json:"switch,omitempty"`
	Status      *string        `json:"status,omitempty" example:"maintenance"`
	Role        *string        `json:"role,omitempty"`
	Description *string        `json:"description,omitempty"`
	Extra       map[string]any `json:"extra,omitempty"`
}

type StatisticsResponse struct {
	Site          string         `json:"site,omitempty" example:"hq"`
	TotalDevices  int            `json:"total_devices" example:"12"`
	ByType        map[string]int `json:"by_type"`
	ByVlan        map[int]int    `json:"by_vlan"`
	ByStatus      map[string]int `json:"by_status"`
	DHCPDevices   int            `json:"dhcp_devices" example:"4"`
	StaticDevices int            `json:"static_devices" example:"8"`
}

type FreeIPsResponse struct {
	Site     string        `json:"site" example:"hq"`
	Vlan     int           `json:"vlan" example:"20"`
	VlanInfo *VlanResponse `json:"vlan_info"`
	FreeIPs  []string      `json:"free_ips"`
	Count    int           `json:"count" example:"252"`
}

type ExportResponse struct {
	Filename string `json:"filename" example:"devices_hq_20251103_140509.csv"`
	Rows     int    `json:"rows" example:"12"`
}

func deviceToResponse(d domain.Device) DeviceResponse {
	return DeviceResponse{
		Name:        d.Name,
		Type:        d.Type,
		Vlan:        int(d.Vlan),
		IP:          d.IP,
		Port:        d.Port,
		Switch:      d.Switch,
		Status:      d.Status,
		Role:        d.Role,
		Description: d.Description,
		Site:        d.Site,
		Extra:       d.Extra,
	}
}

func devicesToResponse(devices []domain.Device) DevicesResponse {
	out := make([]DeviceResponse, 0, len(devices))
	for _, d := range devices {
		out = append(out, deviceToResponse(d))
	}
	return DevicesResponse{Devices: out, Count: len(out)}
}

func vlanToResponse(v domain.Vlan) VlanResponse {
	resp := VlanResponse{
		ID:      int(v.ID),
		Name:    v.Name,
		Subnet:  v.Subnet,
		Gateway: v.Gateway,
	}
	if v.DHCPPool != nil {
		resp.DHCPPool = &DHCPPoolResponse{Start: v.DHCPPool.Start, End: v.DHCPPool.End}
	}
	return resp
}

func siteToResponse(s domain.Site) SiteResponse {
	vlans := make([]VlanResponse, 0, len(s.Vlans))
	for _, v := range s.Vlans {
		vlans = append(vlans, vlanToResponse(v))
	}
	return SiteResponse{
		Key:     s.Key,
		Vlans:   vlans,
		Devices: devicesToResponse(s.Devices).Devices,
	}
}

func statisticsToResponse(site string, s domain.Statistics) StatisticsResponse {
	byVlan := make(map[int]int, len(s.ByVlan))
	for id, n := range s.ByVlan {
		byVlan[int(id)] = n
	}
	return StatisticsResponse{
		Site:          site,
		TotalDevices:  s.TotalDevices,
		ByType:        s.ByType,
		ByVlan:        byVlan,
		ByStatus:      s.ByStatus,
		DHCPDevices:   s.DHCPDevices,
		StaticDevices: s.StaticDevices,
	}
}

func (r CreateDeviceRequest) toDevice() domain.Device {
	return domain.Device{
		Name:        r.Name,
		Type:        r.Type,
		Vlan:        domain.VlanID(r.Vlan),
		IP:          r.IP,
		Port:        r.Port,
		Switch:      r.Switch,
		Status:      r.Status,
		Role:        r.Role,
		Description: r.Description,
		Extra:       r.Extra,
	}
}

func (r UpdateDeviceRequest) toUpdate() domain.DeviceUpdate {
	u := domain.DeviceUpdate{
		Name:        r.Name,
		Type:        r.Type,
		IP:          r.IP,
		Port:        r.Port,
		Switch:      r.Switch,
		Status:      r.Status,
		Role:        r.Role,
		Description: r.Description,
		Extra:       r.Extra,
	}
	if r.Vlan != nil {
		id := domain.VlanID(*r.Vlan)
		u.Vlan = &id
	}
	return u
}
