package model

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// DeviceType describes the kind of hardware a device runs on
type DeviceType string

const (
	DeviceDesktop = DeviceType("desktop")
	DeviceLaptop  = DeviceType("laptop")
	DeviceMobile  = DeviceType("mobile")
	DeviceServer  = DeviceType("server")
	DeviceOther   = DeviceType("other")
)

func (t DeviceType) Valid() bool {
	switch t {
	case DeviceDesktop, DeviceLaptop, DeviceMobile, DeviceServer, DeviceOther:
		return true
	default:
		return false
	}
}

// String returns the capitalized type name, e.g. "Laptop".
func (t DeviceType) String() string {
	if t == "" {
		return ""
	}
	return strings.ToUpper(string(t[:1])) + string(t[1:])
}

var deviceIDRegex = regexp.MustCompile(`^[\w.-]+$`)

// ValidDeviceID reports whether id can be used as a device identifier.
func ValidDeviceID(id string) bool {
	return deviceIDRegex.MatchString(id)
}

// Device identifies a client application under a user account.
// Two devices are the same device when their IDs match.
type Device struct {
	// ID should be unique within the user account, sharing it between
	// applications makes them overwrite each other's subscriptions.
	ID            string     `json:"id"`
	Caption       string     `json:"caption"`
	Type          DeviceType `json:"type"`
	Subscriptions int        `json:"subscriptions"`
}

func (d Device) Equal(other Device) bool {
	return d.ID == other.ID
}

func (d Device) String() string {
	return fmt.Sprintf("%s %s (id=%s)", d.Type, d.Caption, d.ID)
}

// SortDevices orders devices by ID.
func SortDevices(devices []Device) {
	sort.Slice(devices, func(i, j int) bool {
		return devices[i].ID < devices[j].ID
	})
}

// DeviceData is the partial update sent when registering or renaming a device.
// Nil fields are left unchanged on the server.
type DeviceData struct {
	Caption *string     `json:"caption,omitempty"`
	Type    *DeviceType `json:"type,omitempty"`
}

// DeviceUpdates is everything that changed for a device since a cursor.
type DeviceUpdates struct {
	Add       []Podcast       `json:"add"`
	Remove    []string        `json:"rem"`
	Updates   []EpisodeUpdate `json:"updates"`
	Timestamp Timestamp       `json:"timestamp"`
}
