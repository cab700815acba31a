package wm

import (
	"strings"

	"github.com/thiagokokada/hyprland-go"
)

// Window is an open Hyprland client as reported by `j/clients`.
type Window = hyprland.Client

// addressPrefix is how Hyprland writes window addresses in client listings;
// events such as activewindowv2 omit it.
const addressPrefix = "0x"

// NormalizeAddress converts an event address to the client-listing format.
func NormalizeAddress(addr string) string {
	addr = strings.TrimSpace(addr)
	if addr == "" || strings.HasPrefix(addr, addressPrefix) {
		return addr
	}
	return addressPrefix + addr
}

// FindByAddress returns the mapped window whose address equals addr.
// addr must already be normalized.
func FindByAddress(windows []Window, addr string) (Window, bool) {
	if addr == "" {
		return Window{}, false
	}
	for _, w := range windows {
		if w.Mapped && w.Address == addr {
			return w, true
		}
	}
	return Window{}, false
}
