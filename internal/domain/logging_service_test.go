package domain

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"testing"
)

type captureHandler struct {
	records []slog.Record
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

func (h *captureHandler) Handle(_ context.Context, record slog.Record) error {
	clone := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	record.Attrs(func(attr slog.Attr) bool {
		clone.AddAttrs(attr)
		return true
	})
	h.records = append(h.records, clone)
	return nil
}

func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler {
	return h
}

func (h *captureHandler) WithGroup(string) slog.Handler {
	return h
}

// stubInventoryService overrides a handful of methods; the embedded
// interface is nil, so calling anything else panics.
type stubInventoryService struct {
	InventoryService

	addDeviceFn     func(context.Context, string, Device) (Device, error)
	deleteDeviceFn  func(context.Context, string, string) error
	freeAddressesFn func(context.Context, VlanID, string) ([]string, error)
	exportCSVFn     func(context.Context, io.Writer, string) (int, error)
}

func (s stubInventoryService) AddDevice(ctx context.Context, site string, device Device) (Device, error) {
	if s.addDeviceFn == nil {
		return Device{}, nil
	}
	return s.addDeviceFn(ctx, site, device)
}

func (s stubInventoryService) DeleteDevice(ctx context.Context, site string, name string) error {
	if s.deleteDeviceFn == nil {
		return nil
	}
	return s.deleteDeviceFn(ctx, site, name)
}

func (s stubInventoryService) FreeAddresses(ctx context.Context, id VlanID, site string) ([]string, error) {
	if s.freeAddressesFn == nil {
		return nil, nil
	}
	return s.freeAddressesFn(ctx, id, site)
}

func (s stubInventoryService) ExportCSV(ctx context.Context, w io.Writer, site string) (int, error) {
	if s.exportCSVFn == nil {
		return 0, nil
	}
	return s.exportCSVFn(ctx, w, site)
}

func attrValue(record slog.Record, key string) (slog.Value, bool) {
	var (
		value slog.Value
		found bool
	)
	record.Attrs(func(attr slog.Attr) bool {
		if attr.Key == key {
			value, found = attr.Value, true
			return false
		}
		return true
	})
	return value, found
}

func TestLoggingInventoryServiceLogsDeviceAdded(t *testing.T) {
	handler := &captureHandler{}
	logger := slog.New(handler)
	service := NewLoggingInventoryService(logger, stubInventoryService{
		addDeviceFn: func(_ context.Context, site string, d Device) (Device, error) {
			d.Site = site
			return d, nil
		},
	})

	_, err := service.AddDevice(context.Background(), "hq", Device{Name: "srv-01", IP: "10.10.20.10"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(handler.records) != 1 {
		t.Fatalf("expected 1 log record, got %d", len(handler.records))
	}
	record := handler.records[0]
	if record.Level != slog.LevelInfo || record.Message != "device added" {
		t.Fatalf("unexpected log record: level=%v message=%q", record.Level, record.Message)
	}
	if v, ok := attrValue(record, "ip"); !ok || v.String() != "10.10.20.10" {
		t.Fatalf("expected ip attribute, got %v", v)
	}
}

func TestLoggingInventoryServiceLogsErrors(t *testing.T) {
	handler := &captureHandler{}
	logger := slog.New(handler)
	service := NewLoggingInventoryService(logger, stubInventoryService{
		deleteDeviceFn: func(context.Context, string, string) error {
			return ErrNotFound
		},
	})

	err := service.DeleteDevice(context.Background(), "hq", "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if len(handler.records) != 1 {
		t.Fatalf("expected 1 log record, got %d", len(handler.records))
	}
	if handler.records[0].Level != slog.LevelError || handler.records[0].Message != "delete device failed" {
		t.Fatalf("unexpected log record: level=%v message=%q", handler.records[0].Level, handler.records[0].Message)
	}
}

func TestLoggingInventoryServiceLogsFreeAddressCountAtDebug(t *testing.T) {
	handler := &captureHandler{}
	logger := slog.New(handler)
	service := NewLoggingInventoryService(logger, stubInventoryService{
		freeAddressesFn: func(context.Context, VlanID, string) ([]string, error) {
			return []string{"10.10.20.2", "10.10.20.3"}, nil
		},
	})

	if _, err := service.FreeAddresses(context.Background(), 20, "hq"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(handler.records) != 1 || handler.records[0].Level != slog.LevelDebug {
		t.Fatalf("expected one debug record, got %d", len(handler.records))
	}
	if v, ok := attrValue(handler.records[0], "count"); !ok || v.Int64() != 2 {
		t.Fatalf("expected count=2, got %v", v)
	}
}

func TestLoggingInventoryServiceWarnsOnExportFailure(t *testing.T) {
	handler := &captureHandler{}
	logger := slog.New(handler)
	service := NewLoggingInventoryService(logger, stubInventoryService{
		exportCSVFn: func(context.Context, io.Writer, string) (int, error) {
			return 0, ErrNotFound
		},
	})

	_, err := service.ExportCSV(context.Background(), io.Discard, "lab")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(handler.records) != 1 || handler.records[0].Level != slog.LevelWarn {
		t.Fatalf("expected one warn record, got %+v", handler.records)
	}
}

func TestNewLoggingInventoryServiceReturnsNextWhenLoggerNil(t *testing.T) {
	called := false
	next := stubInventoryService{
		addDeviceFn: func(_ context.Context, _ string, d Device) (Device, error) {
			called = true
			return d, nil
		},
	}
	wrapped := NewLoggingInventoryService(nil, next)
	device, err := wrapped.AddDevice(context.Background(), "hq", Device{Name: "srv-99"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !called {
		t.Fatal("expected wrapped service to delegate to next")
	}
	if device.Name != "srv-99" {
		t.Fatalf("unexpected device name: %q", device.Name)
	}
}

func TestCaptureHandlerStoresIndependentRecords(t *testing.T) {
	handler := &captureHandler{}
	logger := slog.New(handler)
	logger.Info("first")
	logger.Info("second")

	if len(handler.records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(handler.records))
	}
	if !slices.Equal([]string{handler.records[0].Message, handler.records[1].Message}, []string{"first", "second"}) {
		t.Fatalf("unexpected messages: %q, %q", handler.records[0].Message, handler.records[1].Message)
	}
}
