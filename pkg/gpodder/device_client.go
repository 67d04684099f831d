package gpodder

import (
	"context"

	"github.com/mxpv/mygpo/pkg/model"
)

// DeviceClient is a Client bound to one device id.
type DeviceClient struct {
	*Client
	id string
}

// Device returns a client scoped to deviceID.
func (c *Client) Device(deviceID string) *DeviceClient {
	return &DeviceClient{Client: c, id: deviceID}
}

func (d *DeviceClient) ID() string {
	return d.id
}

func (d *DeviceClient) Subscriptions(ctx context.Context) ([]string, error) {
	return d.DeviceSubscriptions(ctx, d.id)
}

func (d *DeviceClient) UploadSubscriptions(ctx context.Context, urls []string) error {
	return d.UploadDeviceSubscriptions(ctx, d.id, urls)
}

func (d *DeviceClient) UploadChanges(ctx context.Context, add, remove []string) (*model.UpdateResponse, error) {
	return d.UploadSubscriptionChanges(ctx, d.id, add, remove)
}

func (d *DeviceClient) Changes(ctx context.Context, since int64) (*model.SubscriptionChanges, error) {
	return d.SubscriptionChanges(ctx, d.id, since)
}

func (d *DeviceClient) UpdateData(ctx context.Context, data model.DeviceData) error {
	return d.UpdateDeviceData(ctx, d.id, data)
}

func (d *DeviceClient) Updates(ctx context.Context, since int64, includeActions bool) (*model.DeviceUpdates, error) {
	return d.DeviceUpdates(ctx, d.id, since, includeActions)
}
