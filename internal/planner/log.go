package planner

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

const timestampLayout = "2006-01-02 15:04:05"

var logHeader = []string{
	"Timestamp",
	"VLAN-ID",
	"Name",
	"Site",
	"Subnet",
	"Subnet Mask",
	"Gateway",
	"First IP",
	"Last IP",
	"Broadcast",
	"Usable IPs",
	"DHCP-Start",
	"DHCP-End",
}

// Log appends plans to a CSV file. The header is written once, when the file
// is created.
type Log struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

func NewLog(path string) *Log {
	return &Log{path: path, now: time.Now}
}

// WithClock replaces the timestamp source.
func (l *Log) WithClock(now func() time.Time) *Log {
	l.now = now
	return l
}

func (l *Log) Path() string {
	return l.path
}

func (l *Log) Append(s AddressSummary) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create plan log dir: %w", err)
		}
	}

	_, err := os.Stat(l.path)
	fresh := errors.Is(err, fs.ErrNotExist)
	if err != nil && !fresh {
		return fmt.Errorf("stat plan log: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open plan log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if fresh {
		if err := w.Write(logHeader); err != nil {
			return fmt.Errorf("write plan log header: %w", err)
		}
	}
	if err := w.Write(s.record(l.now())); err != nil {
		return fmt.Errorf("write plan log row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush plan log: %w", err)
	}
	return f.Close()
}

func (s AddressSummary) record(at time.Time) []string {
	return []string{
		at.Format(timestampLayout),
		strconv.Itoa(int(s.VlanID)),
		s.VlanName,
		s.Site,
		s.CIDR,
		s.SubnetMask,
		s.Gateway,
		s.FirstUsable,
		s.LastUsable,
		s.Broadcast,
		strconv.Itoa(s.UsableIPs),
		s.DHCPStart,
		s.DHCPEnd,
	}
}
