package gpodder

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mxpv/mygpo/pkg/model"
)

// AllSubscriptions returns the podcasts the user is subscribed to on any device.
func (c *Client) AllSubscriptions(ctx context.Context) ([]model.Podcast, error) {
	const op = "AllSubscriptions"
	if err := c.requireUser(op); err != nil {
		return nil, err
	}

	var out []model.Podcast
	if err := c.do(ctx, request{
		op:     op,
		method: http.MethodGet,
		url:    c.endpoint(nil, "/subscriptions/%s.json", c.username),
		auth:   true,
		dest:   &out,
	}); err != nil {
		return nil, err
	}

	return out, nil
}

// DeviceSubscriptions returns the feed URLs a device is subscribed to.
func (c *Client) DeviceSubscriptions(ctx context.Context, deviceID string) ([]string, error) {
	const op = "DeviceSubscriptions"
	if err := c.checkDevice(op, deviceID); err != nil {
		return nil, err
	}

	var out []string
	if err := c.do(ctx, request{
		op:     op,
		method: http.MethodGet,
		url:    c.endpoint(nil, "/subscriptions/%s/%s.json", c.username, deviceID),
		auth:   true,
		dest:   &out,
	}); err != nil {
		return nil, err
	}

	return out, nil
}

// UploadDeviceSubscriptions replaces the device's subscription list with urls.
func (c *Client) UploadDeviceSubscriptions(ctx context.Context, deviceID string, urls []string) error {
	const op = "UploadDeviceSubscriptions"
	if err := c.checkDevice(op, deviceID); err != nil {
		return err
	}

	for _, u := range urls {
		if !model.ValidURL(u) {
			return invalid(op, "invalid podcast URL %q", u)
		}
	}

	if urls == nil {
		urls = []string{}
	}

	return c.do(ctx, request{
		op:     op,
		method: http.MethodPut,
		url:    c.endpoint(nil, "/subscriptions/%s/%s.json", c.username, deviceID),
		auth:   true,
		body:   urls,
	})
}

// UploadSubscriptionChanges adds and removes subscriptions of a device.
// The response lists URLs the server rewrote; callers should use the new ones.
func (c *Client) UploadSubscriptionChanges(ctx context.Context, deviceID string, add, remove []string) (*model.UpdateResponse, error) {
	const op = "UploadSubscriptionChanges"
	if err := c.checkDevice(op, deviceID); err != nil {
		return nil, err
	}

	changes := model.SubscriptionChanges{Add: add, Remove: remove}
	if changes.Add == nil {
		changes.Add = []string{}
	}
	if changes.Remove == nil {
		changes.Remove = []string{}
	}

	if err := changes.Validate(); err != nil {
		return nil, &Error{Kind: KindInvalid, Op: op, Err: err}
	}

	payload := struct {
		Add    []string `json:"add"`
		Remove []string `json:"remove"`
	}{changes.Add, changes.Remove}

	out := &model.UpdateResponse{}
	if err := c.do(ctx, request{
		op:     op,
		method: http.MethodPost,
		url:    c.endpoint(nil, "/api/2/subscriptions/%s/%s.json", c.username, deviceID),
		auth:   true,
		body:   payload,
		dest:   out,
	}); err != nil {
		return nil, err
	}

	return out, nil
}

// SubscriptionChanges returns subscription changes of a device since the given
// unix timestamp. Use the returned Timestamp as the next cursor.
func (c *Client) SubscriptionChanges(ctx context.Context, deviceID string, since int64) (*model.SubscriptionChanges, error) {
	const op = "SubscriptionChanges"
	if err := c.checkDevice(op, deviceID); err != nil {
		return nil, err
	}
	if since < 0 {
		return nil, invalid(op, "negative timestamp %d", since)
	}

	query := url.Values{}
	query.Set("since", strconv.FormatInt(since, 10))

	out := &model.SubscriptionChanges{}
	if err := c.do(ctx, request{
		op:     op,
		method: http.MethodGet,
		url:    c.endpoint(query, "/api/2/subscriptions/%s/%s.json", c.username, deviceID),
		auth:   true,
		dest:   out,
	}); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) checkDevice(op string, deviceID string) error {
	if err := c.requireUser(op); err != nil {
		return err
	}
	if !model.ValidDeviceID(deviceID) {
		return invalid(op, "invalid device id %q", deviceID)
	}
	return nil
}
