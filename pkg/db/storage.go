package db

import (
	"context"

	"github.com/mxpv/mygpo/pkg/model"
)

type Version int

const (
	CurrentVersion = 1
)

type Storage interface {
	Close() error
	Version() (int, error)

	// GetState returns sync state of a device, ErrNotFound if the device was never synced
	GetState(ctx context.Context, deviceID string) (*model.SyncState, error)

	// SetRegistered marks device as registered on the server
	SetRegistered(ctx context.Context, deviceID string) error

	// ApplyUpdates will atomically:
	// - Insert or update added podcasts
	// - Delete removed podcasts and return what was known about them
	// - Advance the device cursor (it never moves backwards)
	ApplyUpdates(ctx context.Context, deviceID string, updates *model.DeviceUpdates) ([]model.Podcast, error)

	// GetSubscription gets a mirrored podcast by URL
	GetSubscription(ctx context.Context, deviceID string, url string) (*model.Podcast, error)

	// WalkSubscriptions iterates over podcasts mirrored for the given device
	WalkSubscriptions(ctx context.Context, deviceID string, cb func(podcast *model.Podcast) error) error

	// WalkStates iterates over all known devices
	WalkStates(ctx context.Context, cb func(state *model.SyncState) error) error

	// DeleteDevice deletes device state and its mirror
	DeleteDevice(ctx context.Context, deviceID string) error
}
