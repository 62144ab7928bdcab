//go:build linux

package sensors

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/rhino/internal/monitor"
)

const sysClassBlock = "/sys/class/block"

func diskKind(device string) monitor.DiskKind {
	return kindFromSysfs(sysClassBlock, device)
}

// kindFromSysfs reads queue/rotational for the device. Partitions have no
// queue of their own, so the parent disk directory is tried next.
func kindFromSysfs(root, device string) monitor.DiskKind {
	if device == "" {
		return monitor.DiskUnknown
	}
	dir, err := filepath.EvalSymlinks(filepath.Join(root, filepath.Base(device)))
	if err != nil {
		return monitor.DiskUnknown
	}

	for _, d := range []string{dir, filepath.Dir(dir)} {
		b, err := os.ReadFile(filepath.Join(d, "queue", "rotational"))
		if err != nil {
			continue
		}
		switch strings.TrimSpace(string(b)) {
		case "0":
			return monitor.DiskSSD
		case "1":
			return monitor.DiskHDD
		}
	}
	return monitor.DiskUnknown
}
