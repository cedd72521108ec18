// Real display-device enumeration reuses hal/internal/udevdiscover —
// the same "enumerate Linux kernel devices in a subsystem" helper
// hal/input/gpio uses for gpiochips.
//
//go:build linux

package display

import "github.com/ardnew/emberhal/hal/internal/udevdiscover"

// DiscoverDRMNodes lists DRM device nodes visible to udev, for
// constructing a real backend's fixed Layer table at startup.
func DiscoverDRMNodes() ([]udevdiscover.Entry, error) {
	return udevdiscover.Subsystem("drm")
}
