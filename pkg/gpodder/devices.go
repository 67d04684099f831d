package gpodder

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mxpv/mygpo/pkg/model"
)

// ListDevices returns the devices of the user.
func (c *Client) ListDevices(ctx context.Context) ([]model.Device, error) {
	const op = "ListDevices"
	if err := c.requireUser(op); err != nil {
		return nil, err
	}

	var out []model.Device
	if err := c.do(ctx, request{
		op:     op,
		method: http.MethodGet,
		url:    c.endpoint(nil, "/api/2/devices/%s.json", c.username),
		auth:   true,
		dest:   &out,
	}); err != nil {
		return nil, err
	}

	return out, nil
}

// UpdateDeviceData sets caption and type of a device, creating it when it
// does not exist. Nil fields are left unchanged.
func (c *Client) UpdateDeviceData(ctx context.Context, deviceID string, data model.DeviceData) error {
	const op = "UpdateDeviceData"
	if err := c.checkDevice(op, deviceID); err != nil {
		return err
	}
	if data.Type != nil && !data.Type.Valid() {
		return invalid(op, "unsupported device type %q", string(*data.Type))
	}

	return c.do(ctx, request{
		op:     op,
		method: http.MethodPost,
		url:    c.endpoint(nil, "/api/2/devices/%s/%s.json", c.username, deviceID),
		auth:   true,
		body:   data,
	})
}

// DeviceUpdates returns subscription changes and episode updates of a device
// since the given unix timestamp.
func (c *Client) DeviceUpdates(ctx context.Context, deviceID string, since int64, includeActions bool) (*model.DeviceUpdates, error) {
	const op = "DeviceUpdates"
	if err := c.checkDevice(op, deviceID); err != nil {
		return nil, err
	}
	if since < 0 {
		return nil, invalid(op, "negative timestamp %d", since)
	}

	query := url.Values{}
	query.Set("since", strconv.FormatInt(since, 10))
	query.Set("include_actions", strconv.FormatBool(includeActions))

	out := &model.DeviceUpdates{}
	if err := c.do(ctx, request{
		op:     op,
		method: http.MethodGet,
		url:    c.endpoint(query, "/api/2/updates/%s/%s.json", c.username, deviceID),
		auth:   true,
		dest:   out,
	}); err != nil {
		return nil, err
	}

	return out, nil
}
