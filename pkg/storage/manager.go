package storage

import (
	"fmt"

	"github.com/shashiranjanraj/omikunle/config"
)

// Manager holds the configured disks and knows which one is the default.
type Manager struct {
	disks       map[string]Disk
	defaultDisk string
}

// NewManager boots the storage manager from the application config.
// The local disk is always available; the s3 disk only when S3_BUCKET is set.
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{
		disks:       map[string]Disk{},
		defaultDisk: cfg.StorageDisk,
	}

	m.disks["local"] = newLocalDisk(cfg.StorageLocalRoot, cfg.StorageURL)

	if cfg.S3Bucket != "" {
		d, err := newS3Disk(cfg)
		if err != nil {
			return nil, err
		}
		m.disks["s3"] = d
	}

	if _, ok := m.disks[m.defaultDisk]; !ok {
		return nil, fmt.Errorf("storage: default disk %q is not configured", m.defaultDisk)
	}

	return m, nil
}

// Disk returns the default disk.
func (m *Manager) Disk() Disk {
	return m.disks[m.defaultDisk]
}

// Use returns the named disk ("local" or "s3").
func (m *Manager) Use(name string) (Disk, error) {
	d, ok := m.disks[name]
	if !ok {
		return nil, fmt.Errorf("storage: disk %q is not configured", name)
	}
	return d, nil
}

// Register plugs in a custom Disk implementation, replacing any existing
// driver with the same name. Used by tests to stub the default disk.
func (m *Manager) Register(name string, d Disk) {
	if m.disks == nil {
		m.disks = map[string]Disk{}
	}
	m.disks[name] = d
}
