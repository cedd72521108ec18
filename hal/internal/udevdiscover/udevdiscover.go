// Package udevdiscover is a small shared helper over
// github.com/jochenvg/go-udev, used by both hal/input/gpio (discover
// gpiochip devices) and hal/display's real-backend enumeration
// (discover DRM/fb devices) — both are "enumerate Linux kernel
// devices in a subsystem" concerns and share one discovery path.
//
//go:build linux

package udevdiscover

import (
	"sort"

	"github.com/jochenvg/go-udev"
)

// Entry is one matched device's identifying fields.
type Entry struct {
	Syspath string
	Devnode string
	Sysname string
}

// Subsystem enumerates every device udev reports under subsystem
// (e.g. "gpio", "drm", "input"), sorted by syspath.
func Subsystem(subsystem string) ([]Entry, error) {
	u := udev.Udev{}
	e := u.NewEnumerate()
	if err := e.AddMatchSubsystem(subsystem); err != nil {
		return nil, err
	}
	devices, err := e.Devices()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(devices))
	for _, d := range devices {
		entries = append(entries, Entry{
			Syspath: d.Syspath(),
			Devnode: d.Devnode(),
			Sysname: d.Sysname(),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Syspath < entries[j].Syspath })
	return entries, nil
}
