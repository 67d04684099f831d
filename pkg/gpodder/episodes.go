package gpodder

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mxpv/mygpo/pkg/model"
)

// UploadEpisodeActions appends actions to the user's episode history.
func (c *Client) UploadEpisodeActions(ctx context.Context, actions []model.EpisodeAction) (*model.UpdateResponse, error) {
	const op = "UploadEpisodeActions"
	if err := c.requireUser(op); err != nil {
		return nil, err
	}
	if len(actions) == 0 {
		return nil, invalid(op, "no actions to upload")
	}

	for i := range actions {
		if err := actions[i].Validate(); err != nil {
			return nil, invalid(op, "action %d: %v", i, err)
		}
	}

	out := &model.UpdateResponse{}
	if err := c.do(ctx, request{
		op:     op,
		method: http.MethodPost,
		url:    c.endpoint(nil, "/api/2/episodes/%s.json", c.username),
		auth:   true,
		body:   actions,
		dest:   out,
	}); err != nil {
		return nil, err
	}

	return out, nil
}

// EpisodeQuery filters EpisodeActions.
type EpisodeQuery struct {
	// Since is a unix timestamp, 0 returns the full history.
	Since int64
	// Podcast limits actions to one feed URL.
	Podcast string
	// Device limits actions to one device.
	Device string
	// Aggregated returns only the latest action per episode.
	Aggregated bool
}

// EpisodeActions downloads episode actions matching query.
func (c *Client) EpisodeActions(ctx context.Context, query EpisodeQuery) (*model.EpisodeActions, error) {
	const op = "EpisodeActions"
	if err := c.requireUser(op); err != nil {
		return nil, err
	}
	if query.Since < 0 {
		return nil, invalid(op, "negative timestamp %d", query.Since)
	}

	values := url.Values{}
	if query.Since > 0 {
		values.Set("since", strconv.FormatInt(query.Since, 10))
	}
	if query.Podcast != "" {
		if !model.ValidURL(query.Podcast) {
			return nil, invalid(op, "invalid podcast URL %q", query.Podcast)
		}
		values.Set("podcast", query.Podcast)
	}
	if query.Device != "" {
		if !model.ValidDeviceID(query.Device) {
			return nil, invalid(op, "invalid device id %q", query.Device)
		}
		values.Set("device", query.Device)
	}
	if query.Aggregated {
		values.Set("aggregated", "true")
	}

	out := &model.EpisodeActions{}
	if err := c.do(ctx, request{
		op:     op,
		method: http.MethodGet,
		url:    c.endpoint(values, "/api/2/episodes/%s.json", c.username),
		auth:   true,
		dest:   out,
	}); err != nil {
		return nil, err
	}

	return out, nil
}

// Favorites returns the episodes the user marked as favorite.
func (c *Client) Favorites(ctx context.Context) ([]model.EpisodeUpdate, error) {
	const op = "Favorites"
	if err := c.requireUser(op); err != nil {
		return nil, err
	}

	var out []model.EpisodeUpdate
	if err := c.do(ctx, request{
		op:     op,
		method: http.MethodGet,
		url:    c.endpoint(nil, "/api/2/favorites/%s.json", c.username),
		auth:   true,
		dest:   &out,
	}); err != nil {
		return nil, err
	}

	return out, nil
}
