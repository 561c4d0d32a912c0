//go:build !linux && !darwin

package platform

import (
	"errors"
	"runtime"
)

var errNoMemoryProbe = errors.New("no memory probe for this platform")

func probeMemory() (total, available uint64, err error) {
	return 0, 0, errNoMemoryProbe
}

func osVersion() string {
	return runtime.GOOS
}
