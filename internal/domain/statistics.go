package domain

const unknownBucket = "unknown"

type Statistics struct {
	TotalDevices  int            `json:"total_devices"`
	ByType        map[string]int `json:"by_type"`
	ByVlan        map[VlanID]int `json:"by_vlan"`
	ByStatus      map[string]int `json:"by_status"`
	DHCPDevices   int            `json:"dhcp_devices"`
	StaticDevices int            `json:"static_devices"`
}

func computeStatistics(devices []Device) Statistics {
	stats := Statistics{
		TotalDevices: len(devices),
		ByType:       make(map[string]int),
		ByVlan:       make(map[VlanID]int),
		ByStatus:     make(map[string]int),
	}

	for _, d := range devices {
		stats.ByType[orUnknown(d.Type)]++
		stats.ByVlan[d.Vlan]++
		stats.ByStatus[orUnknown(d.Status)]++
		if d.IsDHCP() {
			stats.DHCPDevices++
		}
	}
	stats.StaticDevices = stats.TotalDevices - stats.DHCPDevices

	return stats
}

func orUnknown(s string) string {
	if s == "" {
		return unknownBucket
	}
	return s
}
