package model

import "time"

// SyncState is the local bookkeeping for a device mirrored by the daemon.
type SyncState struct {
	DeviceID string `json:"device_id"`
	// Cursor is the server timestamp to request changes since
	Cursor int64 `json:"cursor"`
	// Registered is set once caption and type were pushed to the server
	Registered bool      `json:"registered"`
	LastSync   time.Time `json:"last_sync"`
	// Subscriptions is the number of podcasts in the local mirror
	Subscriptions int `json:"subscriptions"`
}
