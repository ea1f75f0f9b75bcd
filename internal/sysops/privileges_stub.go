//go:build !unix
// +build !unix

package sysops

// DropPrivileges is a no-op on platforms without setuid semantics.
func DropPrivileges() error {
	return nil
}
