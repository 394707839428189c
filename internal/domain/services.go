package domain

import (
	"context"
	"io"
)

type InventoryService interface {
	ListSites(ctx context.Context) ([]string, error)
	GetSite(ctx context.Context, key string) (Site, error)
	ListDevices(ctx context.Context, filter DeviceFilter) ([]Device, error)
	FindDevice(ctx context.Context, name string, site string) (Device, error)
	GetVlan(ctx context.Context, id VlanID, site string) (Vlan, bool, error)
	FreeAddresses(ctx context.Context, id VlanID, site string) ([]string, error)
	Statistics(ctx context.Context, site string) (Statistics, error)
	AddDevice(ctx context.Context, site string, device Device) (Device, error)
	UpdateDevice(ctx context.Context, site string, name string, update DeviceUpdate) (Device, error)
	DeleteDevice(ctx context.Context, site string, name string) error
	ExportCSV(ctx context.Context, w io.Writer, site string) (int, error)
	ExportToFile(ctx context.Context, path string, site string) (int, error)
	Reload(ctx context.Context) error
}
