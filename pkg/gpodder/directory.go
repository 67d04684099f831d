package gpodder

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mxpv/mygpo/pkg/model"
)

func checkCount(op string, count int) error {
	if count < 1 || count > model.MaxListCount {
		return invalid(op, "count must be between 1 and %d, got %d", model.MaxListCount, count)
	}
	return nil
}

// Suggestions returns up to max podcasts recommended for the user.
func (c *Client) Suggestions(ctx context.Context, max int) ([]model.Suggestion, error) {
	const op = "Suggestions"
	if err := c.requireUser(op); err != nil {
		return nil, err
	}
	if err := checkCount(op, max); err != nil {
		return nil, err
	}

	var out []model.Suggestion
	if err := c.do(ctx, request{
		op:     op,
		method: http.MethodGet,
		url:    c.endpoint(nil, "/suggestions/%s.json", strconv.Itoa(max)),
		auth:   true,
		dest:   &out,
	}); err != nil {
		return nil, err
	}

	return out, nil
}

// TopTags returns the most used directory tags. Does not require credentials.
func (c *Client) TopTags(ctx context.Context, count int) ([]model.Tag, error) {
	const op = "TopTags"
	if err := checkCount(op, count); err != nil {
		return nil, err
	}

	var out []model.Tag
	if err := c.do(ctx, request{
		op:     op,
		method: http.MethodGet,
		url:    c.endpoint(nil, "/api/2/tags/%s.json", strconv.Itoa(count)),
		dest:   &out,
	}); err != nil {
		return nil, err
	}

	return out, nil
}

// PodcastsForTag returns the top podcasts tagged with tag.
func (c *Client) PodcastsForTag(ctx context.Context, tag string, count int) ([]model.Podcast, error) {
	const op = "PodcastsForTag"
	if strings.TrimSpace(tag) == "" {
		return nil, invalid(op, "tag is required")
	}
	if err := checkCount(op, count); err != nil {
		return nil, err
	}

	var out []model.Podcast
	if err := c.do(ctx, request{
		op:     op,
		method: http.MethodGet,
		url:    c.endpoint(nil, "/api/2/tag/%s/%s.json", tag, strconv.Itoa(count)),
		dest:   &out,
	}); err != nil {
		return nil, err
	}

	return out, nil
}

// Toplist returns the most subscribed podcasts.
func (c *Client) Toplist(ctx context.Context, count int) ([]model.Podcast, error) {
	const op = "Toplist"
	if err := checkCount(op, count); err != nil {
		return nil, err
	}

	var out []model.Podcast
	if err := c.do(ctx, request{
		op:     op,
		method: http.MethodGet,
		url:    c.endpoint(nil, "/toplist/%s.json", strconv.Itoa(count)),
		dest:   &out,
	}); err != nil {
		return nil, err
	}

	return out, nil
}

// Search looks up podcasts by title, URL or description.
func (c *Client) Search(ctx context.Context, query string) ([]model.Podcast, error) {
	const op = "Search"
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, invalid(op, "search query is required")
	}

	values := url.Values{}
	values.Set("q", query)

	var out []model.Podcast
	if err := c.do(ctx, request{
		op:     op,
		method: http.MethodGet,
		url:    c.endpoint(values, "/search.json"),
		dest:   &out,
	}); err != nil {
		return nil, err
	}

	return out, nil
}

// PodcastData returns directory metadata for a feed URL.
func (c *Client) PodcastData(ctx context.Context, feedURL string) (*model.Podcast, error) {
	const op = "PodcastData"
	if !model.ValidURL(feedURL) {
		return nil, invalid(op, "invalid podcast URL %q", feedURL)
	}

	values := url.Values{}
	values.Set("url", feedURL)

	out := &model.Podcast{}
	if err := c.do(ctx, request{
		op:     op,
		method: http.MethodGet,
		url:    c.endpoint(values, "/api/2/data/podcast.json"),
		dest:   out,
	}); err != nil {
		return nil, err
	}

	return out, nil
}
