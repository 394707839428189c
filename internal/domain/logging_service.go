package domain

import (
	"context"
	"io"
	"log/slog"
)

type loggingInventoryService struct {
	logger *slog.Logger
	next   InventoryService
}

func NewLoggingInventoryService(logger *slog.Logger, next InventoryService) InventoryService {
	if logger == nil || next == nil {
		return next
	}

	return &loggingInventoryService{
		logger: logger,
		next:   next,
	}
}

func (s *loggingInventoryService) ListSites(ctx context.Context) ([]string, error) {
	sites, err := s.next.ListSites(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "list sites failed", "err", err.Error())
	}
	return sites, err
}

func (s *loggingInventoryService) GetSite(ctx context.Context, key string) (Site, error) {
	site, err := s.next.GetSite(ctx, key)
	if err != nil {
		s.logger.ErrorContext(ctx, "get site failed", "site", key, "err", err.Error())
	}
	return site, err
}

func (s *loggingInventoryService) ListDevices(ctx context.Context, filter DeviceFilter) ([]Device, error) {
	devices, err := s.next.ListDevices(ctx, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "list devices failed",
			"site", filter.Site, "vlan", int(filter.Vlan), "type", filter.Type, "err", err.Error())
	}
	return devices, err
}

func (s *loggingInventoryService) FindDevice(ctx context.Context, name string, site string) (Device, error) {
	device, err := s.next.FindDevice(ctx, name, site)
	if err != nil {
		s.logger.ErrorContext(ctx, "find device failed", "name", name, "site", site, "err", err.Error())
	}
	return device, err
}

func (s *loggingInventoryService) GetVlan(ctx context.Context, id VlanID, site string) (Vlan, bool, error) {
	vlan, ok, err := s.next.GetVlan(ctx, id, site)
	if err != nil {
		s.logger.ErrorContext(ctx, "get vlan failed", "vlan", int(id), "site", site, "err", err.Error())
	}
	return vlan, ok, err
}

func (s *loggingInventoryService) FreeAddresses(ctx context.Context, id VlanID, site string) ([]string, error) {
	free, err := s.next.FreeAddresses(ctx, id, site)
	if err != nil {
		s.logger.ErrorContext(ctx, "free address calculation failed", "vlan", int(id), "site", site, "err", err.Error())
		return free, err
	}

	s.logger.DebugContext(ctx, "free addresses calculated", "vlan", int(id), "site", site, "count", len(free))
	return free, nil
}

func (s *loggingInventoryService) Statistics(ctx context.Context, site string) (Statistics, error) {
	stats, err := s.next.Statistics(ctx, site)
	if err != nil {
		s.logger.ErrorContext(ctx, "statistics failed", "site", site, "err", err.Error())
	}
	return stats, err
}

func (s *loggingInventoryService) AddDevice(ctx context.Context, site string, device Device) (Device, error) {
	added, err := s.next.AddDevice(ctx, site, device)
	if err != nil {
		s.logger.ErrorContext(ctx, "add device failed", "site", site, "name", device.Name, "err", err.Error())
		return added, err
	}

	s.logger.InfoContext(ctx, "device added", "site", site, "name", added.Name, "ip", added.IP)
	return added, nil
}

func (s *loggingInventoryService) UpdateDevice(ctx context.Context, site string, name string, update DeviceUpdate) (Device, error) {
	updated, err := s.next.UpdateDevice(ctx, site, name, update)
	if err != nil {
		s.logger.ErrorContext(ctx, "update device failed", "site", site, "name", name, "err", err.Error())
		return updated, err
	}

	s.logger.InfoContext(ctx, "device updated", "site", site, "name", updated.Name)
	return updated, nil
}

func (s *loggingInventoryService) DeleteDevice(ctx context.Context, site string, name string) error {
	err := s.next.DeleteDevice(ctx, site, name)
	if err != nil {
		s.logger.ErrorContext(ctx, "delete device failed", "site", site, "name", name, "err", err.Error())
		return err
	}

	s.logger.InfoContext(ctx, "device deleted", "site", site, "name", name)
	return nil
}

func (s *loggingInventoryService) ExportCSV(ctx context.Context, w io.Writer, site string) (int, error) {
	n, err := s.next.ExportCSV(ctx, w, site)
	if err != nil {
		s.logger.WarnContext(ctx, "csv export failed", "site", site, "err", err.Error())
	}
	return n, err
}

func (s *loggingInventoryService) ExportToFile(ctx context.Context, path string, site string) (int, error) {
	n, err := s.next.ExportToFile(ctx, path, site)
	if err != nil {
		s.logger.ErrorContext(ctx, "csv export failed", "path", path, "site", site, "err", err.Error())
		return n, err
	}

	s.logger.InfoContext(ctx, "devices exported", "path", path, "site", site, "count", n)
	return n, nil
}

func (s *loggingInventoryService) Reload(ctx context.Context) error {
	err := s.next.Reload(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "reload inventory failed", "err", err.Error())
		return err
	}

	s.logger.InfoContext(ctx, "inventory reloaded")
	return nil
}
