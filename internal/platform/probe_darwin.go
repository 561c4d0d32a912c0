//go:build darwin

package platform

import "golang.org/x/sys/unix"

// probeMemory reads total memory via sysctl. Darwin has no cheap
// "available" counter without Mach calls, so half of total is reported,
// matching the reference monitor's approximation.
func probeMemory() (total, available uint64, err error) {
	total, err = unix.SysctlUint64("hw.memsize")
	if err != nil {
		return 0, 0, err
	}
	return total, total / 2, nil
}

func osVersion() string {
	if v, err := unix.Sysctl("kern.osproductversion"); err == nil && v != "" {
		return "macOS " + v
	}
	return "macOS"
}
