//go:build !linux
// +build !linux

package snapshot

import (
	"context"
	"errors"
)

var errUnsupported = errors.New("procfs source requires linux")

// ProcfsSource is a placeholder on platforms without a /proc filesystem.
type ProcfsSource struct{}

// NewProcfsSource returns an error because /proc is only available on Linux.
func NewProcfsSource() (*ProcfsSource, error) {
	return nil, errUnsupported
}

// Snapshot always fails on unsupported platforms.
func (s *ProcfsSource) Snapshot(ctx context.Context) (Snapshot, error) {
	return nil, errUnsupported
}
