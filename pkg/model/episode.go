package model

import (
	"github.com/pkg/errors"
)

// EpisodeActionType is the kind of event recorded for an episode
type EpisodeActionType string

const (
	ActionDownload = EpisodeActionType("download")
	ActionPlay     = EpisodeActionType("play")
	ActionDelete   = EpisodeActionType("delete")
	ActionNew      = EpisodeActionType("new")
	ActionFlattr   = EpisodeActionType("flattr")
)

func (a EpisodeActionType) Valid() bool {
	switch a {
	case ActionDownload, ActionPlay, ActionDelete, ActionNew, ActionFlattr:
		return true
	default:
		return false
	}
}

// EpisodeAction records a single event for one episode on one device.
// Actions are append-only: the server never rewrites them.
type EpisodeAction struct {
	Podcast   string            `json:"podcast"`
	Episode   string            `json:"episode"`
	Device    string            `json:"device,omitempty"`
	Action    EpisodeActionType `json:"action"`
	Timestamp *Time             `json:"timestamp,omitempty"`
	// Started, Position and Total are in seconds and only apply to play actions.
	Started  *int `json:"started,omitempty"`
	Position *int `json:"position,omitempty"`
	Total    *int `json:"total,omitempty"`
}

func (e *EpisodeAction) Validate() error {
	if e.Podcast == "" {
		return errors.New("podcast URL is required")
	}
	if e.Episode == "" {
		return errors.New("episode URL is required")
	}
	if !e.Action.Valid() {
		return errors.Errorf("unsupported action %q", e.Action)
	}
	if e.Device != "" && !ValidDeviceID(e.Device) {
		return errors.Errorf("invalid device id %q", e.Device)
	}
	if e.Action != ActionPlay && (e.Started != nil || e.Position != nil || e.Total != nil) {
		return errors.Errorf("positions are only allowed for %q actions", ActionPlay)
	}
	return nil
}

// EpisodeUpdate describes an episode in device updates and favorites.
type EpisodeUpdate struct {
	Title        string `json:"title"`
	URL          string `json:"url"`
	PodcastTitle string `json:"podcast_title"`
	PodcastURL   string `json:"podcast_url"`
	Description  string `json:"description"`
	Website      string `json:"website"`
	MygpoLink    string `json:"mygpo_link"`
	Released     Time   `json:"released"`
	// Status is the latest action reported for the episode, if any.
	Status EpisodeActionType `json:"status,omitempty"`
}

// EpisodeActions is a page of actions returned for a "since" query.
type EpisodeActions struct {
	Actions   []EpisodeAction `json:"actions"`
	Timestamp Timestamp       `json:"timestamp"`
}
