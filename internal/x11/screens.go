package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
)

// Screen represents one active display as reported by XRandR.
type Screen struct {
	ID      int
	X       int
	Y       int
	Width   int
	Height  int
	Scale   float64
	Primary bool
}

// GetScreens retrieves all active screens using XRandR. The primary
// output's screen is flagged; when RandR reports no primary, the first
// screen is promoted so the collection always carries exactly one.
func (c *Connection) GetScreens() ([]Screen, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var primaryOutput randr.Output
	if reply, err := randr.GetOutputPrimary(c.XUtil.Conn(), c.Root).Reply(); err == nil {
		primaryOutput = reply.Output
	}

	var screens []Screen
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		screen := Screen{
			ID:     i,
			X:      int(crtcInfo.X),
			Y:      int(crtcInfo.Y),
			Width:  int(crtcInfo.Width),
			Height: int(crtcInfo.Height),
			Scale:  1.0,
		}

		for _, output := range crtcInfo.Outputs {
			if output == primaryOutput && primaryOutput != 0 {
				screen.Primary = true
			}
			if outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), output, resources.ConfigTimestamp).Reply(); err == nil {
				if scale := scaleFromPhysical(int(crtcInfo.Width), int(outputInfo.MmWidth)); scale > 0 {
					screen.Scale = scale
				}
			}
		}

		screens = append(screens, screen)
	}

	if len(screens) == 0 {
		return nil, fmt.Errorf("no active screens found")
	}

	hasPrimary := false
	for i := range screens {
		if screens[i].Primary {
			if hasPrimary {
				screens[i].Primary = false
			}
			hasPrimary = true
		}
	}
	if !hasPrimary {
		screens[0].Primary = true
	}

	return screens, nil
}

// ScreenAt returns the index of the screen containing the point, or 0 when
// the point lies outside every screen.
func ScreenAt(screens []Screen, x, y int) int {
	for i, s := range screens {
		if x >= s.X && x < s.X+s.Width && y >= s.Y && y < s.Y+s.Height {
			return i
		}
	}
	return 0
}

// scaleFromPhysical derives a pixel density factor from the pixel and
// millimeter widths of an output, relative to the 96 DPI baseline.
// Returns 0 when the physical size is unknown.
func scaleFromPhysical(pixels, millimeters int) float64 {
	if pixels <= 0 || millimeters <= 0 {
		return 0
	}
	dpi := float64(pixels) * 25.4 / float64(millimeters)
	return dpi / 96.0
}

// RootGeometry returns the root window dimensions.
func (c *Connection) RootGeometry() (width, height int, err error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get root geometry: %w", err)
	}
	return int(geom.Width), int(geom.Height), nil
}
