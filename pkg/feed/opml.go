package feed

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/mxpv/mygpo/pkg/model"
)

type opml struct {
	XMLName xml.Name `xml:"opml"`
	Version string   `xml:"version,attr"`
	Head    head
	Body    body
}

type head struct {
	XMLName xml.Name `xml:"head"`
	Title   string   `xml:"title"`
}

type body struct {
	XMLName  xml.Name  `xml:"body"`
	Outlines []outline `xml:"outline"`
}

type outline struct {
	Text     string    `xml:"text,attr"`
	Title    string    `xml:"title,attr,omitempty"`
	Type     string    `xml:"type,attr,omitempty"`
	XMLURL   string    `xml:"xmlUrl,attr,omitempty"`
	HTMLURL  string    `xml:"htmlUrl,attr,omitempty"`
	Outlines []outline `xml:"outline"`
}

// BuildOPML renders the local subscription mirror of a device as OPML document.
func BuildOPML(ctx context.Context, deviceID string, provider subscriptionProvider) (string, error) {
	var podcasts []model.Podcast

	if err := provider.WalkSubscriptions(ctx, deviceID, func(podcast *model.Podcast) error {
		podcasts = append(podcasts, *podcast)
		return nil
	}); err != nil {
		return "", errors.Wrapf(err, "failed to query subscriptions of %q", deviceID)
	}

	return MarshalOPML(fmt.Sprintf("mygpo subscriptions (%s)", deviceID), podcasts)
}

// MarshalOPML renders podcasts ordered by URL.
func MarshalOPML(title string, podcasts []model.Podcast) (string, error) {
	sorted := make([]model.Podcast, len(podcasts))
	copy(sorted, podcasts)
	model.SortPodcasts(sorted)

	ou := make([]outline, 0, len(sorted))
	for _, podcast := range sorted {
		text := podcast.Title
		if text == "" {
			text = podcast.URL
		}

		ou = append(ou, outline{
			Text:    text,
			Title:   podcast.Title,
			Type:    "rss",
			XMLURL:  podcast.URL,
			HTMLURL: podcast.Website,
		})
	}

	op := opml{Version: "1.0"}
	op.Head = head{Title: title}
	op.Body = body{Outlines: ou}

	out, err := xml.MarshalIndent(op, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal opml")
	}

	return xml.Header + string(out), nil
}

// ParseOPML extracts feed URLs from an OPML document, including nested outlines.
// Duplicates are returned once, in document order.
func ParseOPML(reader io.Reader) ([]string, error) {
	var doc opml
	if err := xml.NewDecoder(reader).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode opml")
	}

	var (
		urls []string
		seen = map[string]bool{}
		walk func(list []outline)
	)

	walk = func(list []outline) {
		for _, item := range list {
			if item.XMLURL != "" && !seen[item.XMLURL] {
				seen[item.XMLURL] = true
				urls = append(urls, item.XMLURL)
			}
			walk(item.Outlines)
		}
	}

	walk(doc.Body.Outlines)
	return urls, nil
}
