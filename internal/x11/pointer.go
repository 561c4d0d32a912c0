package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

// PointerState is the decoded result of a QueryPointer round trip: the
// root-relative pointer position plus the live button and modifier masks.
type PointerState struct {
	X        int
	Y        int
	Left     bool
	Right    bool
	Middle   bool
	Shift    bool
	Control  bool
	Alt      bool
	Super    bool
	CapsLock bool
}

// QueryPointer reads the pointer position and the button/modifier state in
// a single X round trip.
func (c *Connection) QueryPointer() (*PointerState, error) {
	reply, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to query pointer: %w", err)
	}

	mask := reply.Mask
	return &PointerState{
		X:        int(reply.RootX),
		Y:        int(reply.RootY),
		Left:     mask&xproto.KeyButMaskButton1 != 0,
		Middle:   mask&xproto.KeyButMaskButton2 != 0,
		Right:    mask&xproto.KeyButMaskButton3 != 0,
		Shift:    mask&xproto.KeyButMaskShift != 0,
		CapsLock: mask&xproto.KeyButMaskLock != 0,
		Control:  mask&xproto.KeyButMaskControl != 0,
		Alt:      mask&xproto.KeyButMaskMod1 != 0,
		Super:    mask&xproto.KeyButMaskMod4 != 0,
	}, nil
}
