//go:build linux

package drive

import (
	"fmt"

	"github.com/jochenvg/go-udev"
)

// list matches the teacher's own udev enumeration pattern in
// src/cm108.go (subsystem match + property scan), addressed through
// the jochenvg/go-udev Go binding instead of raw cgo calls into
// libudev, and matching on the "block"/ID_CDROM pair instead of
// "sound"/hidraw.
func list() ([]Drive, error) {
	u := udev.Udev{}
	e := u.NewEnumerate()
	if err := e.AddMatchSubsystem("block"); err != nil {
		return nil, fmt.Errorf("drive: match subsystem: %w", err)
	}
	if err := e.AddMatchProperty("ID_CDROM", "1"); err != nil {
		return nil, fmt.Errorf("drive: match property: %w", err)
	}
	devices, err := e.Devices()
	if err != nil {
		return nil, fmt.Errorf("drive: enumerate devices: %w", err)
	}

	drives := make([]Drive, 0, len(devices))
	for _, d := range devices {
		drives = append(drives, Drive{
			DevNode: d.Devnode(),
			Vendor:  d.PropertyValue("ID_VENDOR"),
			Model:   d.PropertyValue("ID_MODEL"),
		})
	}
	return drives, nil
}
