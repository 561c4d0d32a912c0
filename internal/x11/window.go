package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
)

// ActiveWindow holds the raw X11 view of the focused window. Desktop is
// -1 for sticky windows (visible on all desktops).
type ActiveWindow struct {
	ID      uint32
	Title   string
	Class   string
	PID     int
	Desktop int
	X       int
	Y       int
	Width   int
	Height  int
}

// GetActiveWindow queries the focused window via _NET_ACTIVE_WINDOW and
// collects its EWMH/ICCCM metadata and root-relative geometry.
func (c *Connection) GetActiveWindow() (*ActiveWindow, error) {
	windowID, err := ewmh.ActiveWindowGet(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to get active window: %w", err)
	}
	if windowID == 0 {
		return nil, fmt.Errorf("no active window")
	}

	win := &ActiveWindow{
		ID:    uint32(windowID),
		Title: c.windowTitle(windowID),
		Class: c.windowClass(windowID),
	}

	if pid, err := ewmh.WmPidGet(c.XUtil, windowID); err == nil {
		win.PID = int(pid)
	}

	if desktop, err := ewmh.WmDesktopGet(c.XUtil, windowID); err == nil {
		if desktop == 0xFFFFFFFF {
			win.Desktop = -1
		} else {
			win.Desktop = int(desktop)
		}
	}

	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get window geometry: %w", err)
	}
	translate, err := xproto.TranslateCoordinates(c.XUtil.Conn(), windowID, c.Root, 0, 0).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to translate window coordinates: %w", err)
	}

	win.X = int(translate.DstX)
	win.Y = int(translate.DstY)
	win.Width = int(geom.Width)
	win.Height = int(geom.Height)

	return win, nil
}

func (c *Connection) windowTitle(windowID xproto.Window) string {
	title, err := ewmh.WmNameGet(c.XUtil, windowID)
	if err == nil {
		title = strings.TrimSpace(title)
		if title != "" {
			return title
		}
	}

	title, err = icccm.WmNameGet(c.XUtil, windowID)
	if err == nil {
		title = strings.TrimSpace(title)
		if title != "" {
			return title
		}
	}

	return ""
}

func (c *Connection) windowClass(windowID xproto.Window) string {
	wmClass, err := icccm.WmClassGet(c.XUtil, windowID)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(wmClass.Class)
}
