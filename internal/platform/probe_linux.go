//go:build linux

package platform

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// probeMemory reads total and available memory from the kernel.
func probeMemory() (total, available uint64, err error) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0, 0, err
	}
	unit := uint64(info.Unit)
	if unit == 0 {
		unit = 1
	}
	total = uint64(info.Totalram) * unit
	available = (uint64(info.Freeram) + uint64(info.Bufferram)) * unit
	return total, available, nil
}

// osVersion reads the distribution name from /etc/os-release, falling back
// to the bare kernel name.
func osVersion() string {
	f, err := os.Open("/etc/os-release")
	if err != nil {
		return "linux"
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if v, ok := strings.CutPrefix(line, "PRETTY_NAME="); ok {
			return strings.Trim(v, `"`)
		}
	}
	return "linux"
}

// inputMonitoringAllowed reports whether raw input devices are readable,
// which is what input event monitoring requires on Linux (membership in
// the input group, or root).
func inputMonitoringAllowed() bool {
	devices, err := filepath.Glob("/dev/input/event*")
	if err != nil || len(devices) == 0 {
		return false
	}
	for _, dev := range devices {
		f, err := os.Open(dev)
		if err == nil {
			f.Close()
			return true
		}
	}
	return false
}
