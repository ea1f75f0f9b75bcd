// Package sysops holds the small platform-specific operations the daemon
// performs at startup, currently limited to relinquishing elevated
// privileges before any monitoring work begins.
package sysops
