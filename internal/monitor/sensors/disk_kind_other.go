//go:build !linux

package sensors

import "github.com/rileyhilliard/rhino/internal/monitor"

// diskKind has no portable source outside Linux sysfs.
func diskKind(string) monitor.DiskKind {
	return monitor.DiskUnknown
}
