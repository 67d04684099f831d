package model

import (
	"fmt"
	"sort"
)

// Podcast is a podcast as described by the gpodder.net directory.
type Podcast struct {
	URL                 string `json:"url"`
	Title               string `json:"title"`
	Author              string `json:"author,omitempty"`
	Description         string `json:"description"`
	Subscribers         int    `json:"subscribers"`
	SubscribersLastWeek int    `json:"subscribers_last_week"`
	LogoURL             string `json:"logo_url,omitempty"`
	ScaledLogoURL       string `json:"scaled_logo_url,omitempty"`
	Website             string `json:"website,omitempty"`
	MygpoLink           string `json:"mygpo_link"`
}

// Equal compares podcasts by feed URL only.
func (p Podcast) Equal(other Podcast) bool {
	return p.URL == other.URL
}

func (p Podcast) String() string {
	return fmt.Sprintf("%s: %s <%s>", p.Title, p.Description, p.URL)
}

func SortPodcasts(podcasts []Podcast) {
	sort.Slice(podcasts, func(i, j int) bool {
		return podcasts[i].URL < podcasts[j].URL
	})
}

// Suggestion is a podcast recommended for the user.
type Suggestion struct {
	URL                 string `json:"url"`
	Title               string `json:"title"`
	Description         string `json:"description"`
	Subscribers         int    `json:"subscribers"`
	SubscribersLastWeek int    `json:"subscribers_last_week"`
	LogoURL             string `json:"logo_url,omitempty"`
	Website             string `json:"website"`
	MygpoLink           string `json:"mygpo_link"`
}

func (s Suggestion) Equal(other Suggestion) bool {
	return s.URL == other.URL
}

func (s Suggestion) String() string {
	return fmt.Sprintf("%s: %s <%s>", s.Title, s.Description, s.URL)
}

// Tag is a directory tag with its usage count
type Tag struct {
	Title string `json:"title"`
	Tag   string `json:"tag"`
	Usage int    `json:"usage"`
}
