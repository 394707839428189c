package domain

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/Flarenzy/site-ipam/internal/fsutil"
)

type inventoryService struct {
	mu        sync.Mutex
	repo      InventoryRepository
	inventory Inventory
}

// NewInventoryService serves inventory, persisting every mutation through repo.
func NewInventoryService(inventory Inventory, repo InventoryRepository) InventoryService {
	return &inventoryService{
		repo:      repo,
		inventory: inventory,
	}
}

func (s *inventoryService) ListSites(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.inventory.Sites))
	for _, site := range s.inventory.Sites {
		keys = append(keys, site.Key)
	}
	return keys, nil
}

func (s *inventoryService) GetSite(_ context.Context, key string) (Site, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	site, err := s.site(key)
	if err != nil {
		return Site{}, err
	}
	out := Site{
		Key:     site.Key,
		Vlans:   slices.Clone(site.Vlans),
		Devices: annotate(site),
	}
	return out, nil
}

func (s *inventoryService) ListDevices(_ context.Context, filter DeviceFilter) ([]Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	devices, err := s.devices(filter.Site)
	if err != nil {
		return nil, err
	}

	return slices.DeleteFunc(devices, func(d Device) bool {
		if filter.Vlan != 0 && d.Vlan != filter.Vlan {
			return true
		}
		return filter.Type != "" && d.Type != filter.Type
	}), nil
}

func (s *inventoryService) FindDevice(_ context.Context, name string, site string) (Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	devices, err := s.devices(site)
	if err != nil {
		return Device{}, err
	}
	for _, d := range devices {
		if d.Name == name {
			return d, nil
		}
	}
	return Device{}, fmt.Errorf("%w: device %q", ErrNotFound, name)
}

func (s *inventoryService) GetVlan(_ context.Context, id VlanID, site string) (Vlan, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.site(site)
	if err != nil {
		return Vlan{}, false, err
	}
	v, ok := st.Vlan(id)
	return v, ok, nil
}

func (s *inventoryService) FreeAddresses(_ context.Context, id VlanID, site string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.site(site)
	if err != nil {
		return nil, err
	}
	vlan, ok := st.Vlan(id)
	if !ok {
		return []string{}, nil
	}

	members := make([]Device, 0, len(st.Devices))
	for _, d := range st.Devices {
		if d.Vlan == id {
			members = append(members, d)
		}
	}
	return freeAddresses(vlan, members)
}

func (s *inventoryService) Statistics(_ context.Context, site string) (Statistics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	devices, err := s.devices(site)
	if err != nil {
		return Statistics{}, err
	}
	return computeStatistics(devices), nil
}

func (s *inventoryService) AddDevice(ctx context.Context, site string, device Device) (Device, error) {
	if err := validateRequired(device); err != nil {
		return Device{}, err
	}
	if err := validateExtra(device.Extra); err != nil {
		return Device{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.site(site)
	if err != nil {
		return Device{}, err
	}
	if st.deviceIndex(device.Name) >= 0 {
		return Device{}, fmt.Errorf("%w: device %q already exists in site %s", ErrConflict, device.Name, site)
	}
	if err := checkLiteralAddress(*st, device); err != nil {
		return Device{}, err
	}

	device.Site = ""
	device.Extra = maps.Clone(device.Extra)
	st.Devices = append(st.Devices, device)

	device.Site = site
	device.Extra = maps.Clone(device.Extra)
	return device, s.persist(ctx)
}

func (s *inventoryService) UpdateDevice(ctx context.Context, site string, name string, update DeviceUpdate) (Device, error) {
	if err := validateExtra(update.Extra); err != nil {
		return Device{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.site(site)
	if err != nil {
		return Device{}, err
	}
	idx := st.deviceIndex(name)
	if idx < 0 {
		return Device{}, fmt.Errorf("%w: device %q in site %s", ErrNotFound, name, site)
	}

	merged := applyUpdate(st.Devices[idx], update)
	if err := validateRequired(merged); err != nil {
		return Device{}, err
	}
	if merged.Name != name && st.deviceIndex(merged.Name) >= 0 {
		return Device{}, fmt.Errorf("%w: device %q already exists in site %s", ErrConflict, merged.Name, site)
	}
	if update.IP != nil || update.Vlan != nil {
		if err := checkLiteralAddress(*st, merged); err != nil {
			return Device{}, err
		}
	}
	st.Devices[idx] = merged

	merged.Site = site
	merged.Extra = maps.Clone(merged.Extra)
	return merged, s.persist(ctx)
}

func (s *inventoryService) DeleteDevice(ctx context.Context, site string, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.site(site)
	if err != nil {
		return err
	}
	before := len(st.Devices)
	st.Devices = slices.DeleteFunc(st.Devices, func(d Device) bool {
		return d.Name == name
	})
	if len(st.Devices) == before {
		return fmt.Errorf("%w: device %q in site %s", ErrNotFound, name, site)
	}

	return s.persist(ctx)
}

func (s *inventoryService) ExportCSV(_ context.Context, w io.Writer, site string) (int, error) {
	s.mu.Lock()
	devices, err := s.devices(site)
	s.mu.Unlock()
	if err != nil {
		return 0, err
	}
	if len(devices) == 0 {
		return 0, fmt.Errorf("%w: no devices to export", ErrNotFound)
	}

	rows := make([]map[string]string, 0, len(devices))
	columns := make(map[string]struct{})
	for _, d := range devices {
		row := d.Fields()
		for k := range row {
			columns[k] = struct{}{}
		}
		rows = append(rows, row)
	}
	header := slices.Sorted(maps.Keys(columns))

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return 0, fmt.Errorf("write csv header: %w", err)
	}
	record := make([]string, len(header))
	for _, row := range rows {
		for i, col := range header {
			record[i] = row[col]
		}
		if err := cw.Write(record); err != nil {
			return 0, fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("flush csv: %w", err)
	}

	return len(rows), nil
}

func (s *inventoryService) ExportToFile(ctx context.Context, path string, site string) (int, error) {
	s.mu.Lock()
	_, err := s.devices(site)
	s.mu.Unlock()
	if err != nil {
		return 0, err
	}

	var n int
	err = fsutil.WriteFile(path, 0o644, func(w io.Writer) error {
		var err error
		n, err = s.ExportCSV(ctx, w, site)
		return err
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Reload replaces the in-memory inventory with the stored one. Mutations wait
// until the load has finished.
func (s *inventoryService) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inventory, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	s.inventory = inventory
	return nil
}

var filenameReplacer = strings.NewReplacer("/", "_", "\\", "_", " ", "_")

// ExportFilename names a CSV export of site, or of every site when site is
// empty: devices_<site|all>_<YYYYmmdd_HHMMSS>.csv.
func ExportFilename(site string, at time.Time) string {
	if site == "" {
		site = "all"
	}
	return fmt.Sprintf("devices_%s_%s.csv", filenameReplacer.Replace(site), at.Format("20060102_150405"))
}

// persist writes the whole inventory back. A failed save leaves the in-memory
// change in place.
func (s *inventoryService) persist(ctx context.Context) error {
	if err := s.repo.Save(ctx, s.inventory); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

func (s *inventoryService) site(key string) (*Site, error) {
	site, ok := s.inventory.site(key)
	if !ok {
		return nil, fmt.Errorf("%w: site %q", ErrNotFound, key)
	}
	return site, nil
}

// devices flattens the devices of one site, or of every site when key is empty.
func (s *inventoryService) devices(key string) ([]Device, error) {
	if key != "" {
		site, err := s.site(key)
		if err != nil {
			return nil, err
		}
		return annotate(site), nil
	}

	out := make([]Device, 0)
	for i := range s.inventory.Sites {
		out = append(out, annotate(&s.inventory.Sites[i])...)
	}
	return out, nil
}

func annotate(site *Site) []Device {
	out := make([]Device, 0, len(site.Devices))
	for _, d := range site.Devices {
		d.Site = site.Key
		d.Extra = maps.Clone(d.Extra)
		out = append(out, d)
	}
	return out
}

func validateRequired(d Device) error {
	required := []struct {
		field string
		ok    bool
	}{
		{"name", d.Name != ""},
		{"type", d.Type != ""},
		{"vlan", d.Vlan > 0},
		{"ip", d.IP != ""},
		{"port", d.Port != ""},
		{"switch", d.Switch != ""},
		{"status", d.Status != ""},
	}
	for _, r := range required {
		if !r.ok {
			return fmt.Errorf("%w: missing required field: %s", ErrInvalidInput, r.field)
		}
	}
	return nil
}

var reservedKeys = []string{"name", "type", "vlan", "ip", "port", "switch", "status", "role", "description", "site"}

// validateExtra rejects extra keys that would shadow a named device field.
func validateExtra(extra map[string]any) error {
	for k := range extra {
		if k == "" || slices.Contains(reservedKeys, k) {
			return fmt.Errorf("%w: extra key %q is reserved", ErrInvalidInput, k)
		}
	}
	return nil
}

// checkLiteralAddress rejects a literal device address that does not belong to
// its VLAN's subnet. VLANs the site does not declare are not checked.
func checkLiteralAddress(site Site, d Device) error {
	if d.IP == "" || d.IsDHCP() {
		return nil
	}
	if _, err := parseAddr(d.IP); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	vlan, ok := site.Vlan(d.Vlan)
	if !ok {
		return nil
	}
	return checkDeviceAddress(vlan, d.IP)
}

func applyUpdate(d Device, u DeviceUpdate) Device {
	assign := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	assign(&d.Name, u.Name)
	assign(&d.Type, u.Type)
	if u.Vlan != nil {
		d.Vlan = *u.Vlan
	}
	assign(&d.IP, u.IP)
	assign(&d.Port, u.Port)
	assign(&d.Switch, u.Switch)
	assign(&d.Status, u.Status)
	assign(&d.Role, u.Role)
	assign(&d.Description, u.Description)

	if len(u.Extra) > 0 {
		extra := maps.Clone(d.Extra)
		if extra == nil {
			extra = make(map[string]any, len(u.Extra))
		}
		maps.Copy(extra, u.Extra)
		d.Extra = extra
	}
	return d
}
