//go:generate mockgen -source=deps.go -destination=deps_mock_test.go -package=main

package main

import (
	"context"
	"io"

	"github.com/mxpv/mygpo/pkg/model"
)

type gpodderClient interface {
	UpdateDeviceData(ctx context.Context, deviceID string, data model.DeviceData) error
	DeviceUpdates(ctx context.Context, deviceID string, since int64, includeActions bool) (*model.DeviceUpdates, error)
	DeviceSubscriptions(ctx context.Context, deviceID string) ([]string, error)
	UploadSubscriptionChanges(ctx context.Context, deviceID string, add, remove []string) (*model.UpdateResponse, error)
}

type stateStorage interface {
	GetState(ctx context.Context, deviceID string) (*model.SyncState, error)
	SetRegistered(ctx context.Context, deviceID string) error
	ApplyUpdates(ctx context.Context, deviceID string, updates *model.DeviceUpdates) ([]model.Podcast, error)
	GetSubscription(ctx context.Context, deviceID string, url string) (*model.Podcast, error)
	WalkSubscriptions(ctx context.Context, deviceID string, cb func(podcast *model.Podcast) error) error
	WalkStates(ctx context.Context, cb func(state *model.SyncState) error) error
	DeleteDevice(ctx context.Context, deviceID string) error
}

type fileStorage interface {
	Create(ctx context.Context, name string, reader io.Reader) (int64, error)
	Delete(ctx context.Context, name string) error
	URL(ctx context.Context, name string) (string, error)
}
