//go:build unix
// +build unix

package sysops

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// DropPrivileges pins the effective user and group back to the real ones.
// When the binary is installed setuid (to read other users' /proc entries
// at startup) this discards the elevation for the rest of the process
// lifetime. Group first: dropping the user first would leave us without
// the right to drop the group.
func DropPrivileges() error {
	if err := unix.Setgid(unix.Getgid()); err != nil {
		return fmt.Errorf("dropping group privileges: %w", err)
	}
	if err := unix.Setuid(unix.Getuid()); err != nil {
		return fmt.Errorf("dropping user privileges: %w", err)
	}
	return nil
}
