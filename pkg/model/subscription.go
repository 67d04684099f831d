package model

import (
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// SubscriptionChanges is a diff of a device's subscription list.
type SubscriptionChanges struct {
	Add       []string  `json:"add"`
	Remove    []string  `json:"remove"`
	Timestamp Timestamp `json:"timestamp"`
}

// Validate rejects diffs the server would refuse: an URL may not be added and
// removed at the same time, and all URLs must be http(s).
func (s *SubscriptionChanges) Validate() error {
	remove := make(map[string]struct{}, len(s.Remove))
	for _, u := range s.Remove {
		if !ValidURL(u) {
			return errors.Errorf("invalid podcast URL %q", u)
		}
		remove[u] = struct{}{}
	}

	for _, u := range s.Add {
		if !ValidURL(u) {
			return errors.Errorf("invalid podcast URL %q", u)
		}
		if _, ok := remove[u]; ok {
			return errors.Errorf("URL %q is both added and removed", u)
		}
	}

	return nil
}

// UpdateResponse is returned by upload endpoints.
// UpdateURLs lists URLs the server rewrote, as [old, new] pairs; clients
// should replace their local copies with the new value.
type UpdateResponse struct {
	Timestamp  Timestamp   `json:"timestamp"`
	UpdateURLs [][2]string `json:"update_urls"`
}

// Rewritten returns the old -> new URL mapping. Pairs where the server left
// the URL unchanged are skipped.
func (r *UpdateResponse) Rewritten() map[string]string {
	out := make(map[string]string, len(r.UpdateURLs))
	for _, pair := range r.UpdateURLs {
		if pair[0] != pair[1] && pair[1] != "" {
			out[pair[0]] = pair[1]
		}
	}
	return out
}

// ValidURL reports whether u is an absolute http or https URL.
func ValidURL(u string) bool {
	trimmed := strings.TrimSpace(u)
	if trimmed != u || trimmed == "" {
		return false
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return false
	}

	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}
