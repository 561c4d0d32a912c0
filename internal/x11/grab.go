package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

// GrabKey registers a global key grab for the modifier+keycode combination
// on the root window. The X server rejects conflicting grabs, which is how
// an already-taken combination surfaces as an error.
func (c *Connection) GrabKey(modifiers uint16, keycode byte) error {
	err := xproto.GrabKeyChecked(
		c.XUtil.Conn(),
		true,
		c.Root,
		modifiers,
		xproto.Keycode(keycode),
		xproto.GrabModeAsync,
		xproto.GrabModeAsync,
	).Check()
	if err != nil {
		return fmt.Errorf("failed to grab key (mods=%#x keycode=%d): %w", modifiers, keycode, err)
	}
	return nil
}

// UngrabKey releases a previously registered key grab.
func (c *Connection) UngrabKey(modifiers uint16, keycode byte) error {
	err := xproto.UngrabKeyChecked(
		c.XUtil.Conn(),
		xproto.Keycode(keycode),
		c.Root,
		modifiers,
	).Check()
	if err != nil {
		return fmt.Errorf("failed to ungrab key (mods=%#x keycode=%d): %w", modifiers, keycode, err)
	}
	return nil
}
