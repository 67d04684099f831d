package gpodder

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mxpv/mygpo/pkg/model"
)

const (
	testUser     = "alice"
	testPassword = "secret"
)

type subscriptionChange struct {
	device string
	url    string
	add    bool
	ts     int64
}

type recordedAction struct {
	action model.EpisodeAction
	ts     int64
}

// fakeServer is an in-memory implementation of the gpodder.net wire contract.
type fakeServer struct {
	*httptest.Server

	mu       sync.Mutex
	clock    int64
	requests int
	devices  map[string]*model.Device
	subs     map[string]map[string]bool
	changes  []subscriptionChange
	actions  []recordedAction
	podcasts map[string]model.Podcast
}

func newFakeServer(t *testing.T) *fakeServer {
	f := &fakeServer{
		clock:    1000,
		devices:  map[string]*model.Device{},
		subs:     map[string]map[string]bool{},
		podcasts: map[string]model.Podcast{},
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeServer) client(t *testing.T) *Client {
	c, err := New(Config{BaseURL: f.URL, Username: testUser, Password: testPassword, Timeout: 2 * time.Second})
	require.NoError(t, err)
	return c
}

func (f *fakeServer) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests
}

func (f *fakeServer) tick() int64 {
	f.clock++
	return f.clock
}

func (f *fakeServer) podcast(url string) model.Podcast {
	if p, ok := f.podcasts[url]; ok {
		return p
	}
	return model.Podcast{URL: url, Title: url, MygpoLink: "http://gpodder.net/podcast/1"}
}

func (f *fakeServer) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests++

	path := strings.TrimSuffix(r.URL.Path, ".json")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	switch {
	case len(parts) == 1 && parts[0] == "search":
		f.search(w, r)
		return
	case len(parts) == 2 && parts[0] == "toplist":
		f.writeJSON(w, f.toplist())
		return
	case len(parts) == 4 && parts[0] == "api" && parts[2] == "data" && parts[3] == "podcast":
		f.writeJSON(w, f.podcast(r.URL.Query().Get("url")))
		return
	case len(parts) == 4 && parts[0] == "api" && parts[2] == "tags":
		f.writeJSON(w, []model.Tag{{Title: "Technology", Tag: "technology", Usage: 530}})
		return
	case len(parts) == 5 && parts[0] == "api" && parts[2] == "tag":
		f.writeJSON(w, f.toplist())
		return
	}

	user := f.userFromPath(parts)
	if name, pass, ok := r.BasicAuth(); !ok || name != testUser || pass != testPassword || (user != "" && user != name) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	switch {
	case len(parts) == 2 && parts[0] == "subscriptions":
		f.allSubscriptions(w)
	case len(parts) == 3 && parts[0] == "subscriptions":
		f.deviceSubscriptions(w, r, parts[2])
	case len(parts) == 2 && parts[0] == "suggestions":
		f.writeJSON(w, []model.Suggestion{{URL: "http://example.com/suggested.rss", Title: "Suggested"}})
	case len(parts) == 5 && parts[2] == "subscriptions":
		f.subscriptionChanges(w, r, parts[4])
	case len(parts) == 4 && parts[2] == "devices":
		f.listDevices(w)
	case len(parts) == 5 && parts[2] == "devices":
		f.updateDevice(w, r, parts[4])
	case len(parts) == 5 && parts[2] == "updates":
		f.deviceUpdates(w, r, parts[4])
	case len(parts) == 4 && parts[2] == "episodes":
		f.episodes(w, r)
	case len(parts) == 4 && parts[2] == "favorites":
		f.writeJSON(w, []model.EpisodeUpdate{})
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeServer) userFromPath(parts []string) string {
	switch {
	case len(parts) >= 2 && parts[0] == "subscriptions":
		return parts[1]
	case len(parts) >= 4 && parts[0] == "api":
		return parts[3]
	}
	return ""
}

func (f *fakeServer) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeServer) toplist() []model.Podcast {
	return []model.Podcast{{URL: "http://goinglinux.com/mp3podcast.xml", Title: "Going Linux", Subscribers: 571}}
}

func (f *fakeServer) search(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(r.URL.Query().Get("q"))
	out := []model.Podcast{}
	for _, p := range f.toplist() {
		if strings.Contains(strings.ToLower(p.Title), q) {
			out = append(out, p)
		}
	}
	f.writeJSON(w, out)
}

func (f *fakeServer) ensureDevice(id string) {
	if _, ok := f.devices[id]; !ok {
		f.devices[id] = &model.Device{ID: id, Type: model.DeviceOther}
	}
	if _, ok := f.subs[id]; !ok {
		f.subs[id] = map[string]bool{}
	}
}

// rewrite mimics the server sanitizing feed URLs.
func rewrite(url string) string {
	return strings.TrimSuffix(url, "?format=xml")
}

func (f *fakeServer) apply(device string, url string, add bool, ts int64) {
	f.ensureDevice(device)
	if add {
		f.subs[device][url] = true
	} else {
		delete(f.subs[device], url)
	}
	f.devices[device].Subscriptions = len(f.subs[device])
	f.changes = append(f.changes, subscriptionChange{device: device, url: url, add: add, ts: ts})
}

func (f *fakeServer) allSubscriptions(w http.ResponseWriter) {
	seen := map[string]bool{}
	out := []model.Podcast{}
	for _, urls := range f.subs {
		for url := range urls {
			if !seen[url] {
				seen[url] = true
				out = append(out, f.podcast(url))
			}
		}
	}
	model.SortPodcasts(out)
	f.writeJSON(w, out)
}

func (f *fakeServer) deviceSubscriptions(w http.ResponseWriter, r *http.Request, device string) {
	switch r.Method {
	case http.MethodGet:
		out := []string{}
		for url := range f.subs[device] {
			out = append(out, url)
		}
		sort.Strings(out)
		f.writeJSON(w, out)
	case http.MethodPut:
		var urls []string
		if err := json.NewDecoder(r.Body).Decode(&urls); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.ensureDevice(device)
		ts := f.tick()
		wanted := map[string]bool{}
		for _, url := range urls {
			wanted[url] = true
			if !f.subs[device][url] {
				f.apply(device, url, true, ts)
			}
		}
		for url := range f.subs[device] {
			if !wanted[url] {
				f.apply(device, url, false, ts)
			}
		}
		w.WriteHeader(http.StatusOK)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (f *fakeServer) subscriptionChanges(w http.ResponseWriter, r *http.Request, device string) {
	switch r.Method {
	case http.MethodPost:
		var req struct {
			Add    []string `json:"add"`
			Remove []string `json:"remove"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		ts := f.tick()
		resp := model.UpdateResponse{Timestamp: model.Timestamp(time.Unix(ts, 0)), UpdateURLs: [][2]string{}}
		for _, url := range req.Add {
			clean := rewrite(url)
			if clean != url {
				resp.UpdateURLs = append(resp.UpdateURLs, [2]string{url, clean})
			}
			f.apply(device, clean, true, ts)
		}
		for _, url := range req.Remove {
			f.apply(device, rewrite(url), false, ts)
		}
		f.writeJSON(w, resp)
	case http.MethodGet:
		add, remove := f.changesSince(device, r)
		f.writeJSON(w, map[string]interface{}{
			"add":       add,
			"remove":    remove,
			"timestamp": f.clock + 1,
		})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// changesSince returns the net change per URL with a timestamp >= since.
func (f *fakeServer) changesSince(device string, r *http.Request) ([]string, []string) {
	since, _ := strconv.ParseInt(r.URL.Query().Get("since"), 10, 64)

	last := map[string]bool{}
	order := []string{}
	for _, ch := range f.changes {
		if ch.device != device || ch.ts < since {
			continue
		}
		if _, ok := last[ch.url]; !ok {
			order = append(order, ch.url)
		}
		last[ch.url] = ch.add
	}

	add, remove := []string{}, []string{}
	for _, url := range order {
		if last[url] {
			add = append(add, url)
		} else {
			remove = append(remove, url)
		}
	}
	return add, remove
}

func (f *fakeServer) listDevices(w http.ResponseWriter) {
	out := []model.Device{}
	for _, d := range f.devices {
		out = append(out, *d)
	}
	model.SortDevices(out)
	f.writeJSON(w, out)
}

func (f *fakeServer) updateDevice(w http.ResponseWriter, r *http.Request, device string) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var data model.DeviceData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f.ensureDevice(device)
	if data.Caption != nil {
		f.devices[device].Caption = *data.Caption
	}
	if data.Type != nil {
		f.devices[device].Type = *data.Type
	}
	w.WriteHeader(http.StatusOK)
}

func (f *fakeServer) deviceUpdates(w http.ResponseWriter, r *http.Request, device string) {
	add, remove := f.changesSince(device, r)

	podcasts := make([]model.Podcast, 0, len(add))
	for _, url := range add {
		podcasts = append(podcasts, f.podcast(url))
	}

	updates := []model.EpisodeUpdate{}
	if r.URL.Query().Get("include_actions") == "true" {
		since, _ := strconv.ParseInt(r.URL.Query().Get("since"), 10, 64)
		for _, rec := range f.actions {
			if rec.ts >= since {
				updates = append(updates, model.EpisodeUpdate{
					URL:        rec.action.Episode,
					PodcastURL: rec.action.Podcast,
					Status:     rec.action.Action,
				})
			}
		}
	}

	f.writeJSON(w, model.DeviceUpdates{
		Add:       podcasts,
		Remove:    remove,
		Updates:   updates,
		Timestamp: model.Timestamp(time.Unix(f.clock+1, 0)),
	})
}

func (f *fakeServer) episodes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var actions []model.EpisodeAction
		if err := json.NewDecoder(r.Body).Decode(&actions); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		ts := f.tick()
		for _, a := range actions {
			f.actions = append(f.actions, recordedAction{action: a, ts: ts})
		}
		f.writeJSON(w, model.UpdateResponse{Timestamp: model.Timestamp(time.Unix(ts, 0)), UpdateURLs: [][2]string{}})
	case http.MethodGet:
		q := r.URL.Query()
		since, _ := strconv.ParseInt(q.Get("since"), 10, 64)

		out := []model.EpisodeAction{}
		latest := map[string]int{}
		for _, rec := range f.actions {
			a := rec.action
			if rec.ts < since ||
				(q.Get("podcast") != "" && a.Podcast != q.Get("podcast")) ||
				(q.Get("device") != "" && a.Device != q.Get("device")) {
				continue
			}
			if q.Get("aggregated") == "true" {
				if idx, ok := latest[a.Episode]; ok {
					out[idx] = a
					continue
				}
				latest[a.Episode] = len(out)
			}
			out = append(out, a)
		}
		f.writeJSON(w, model.EpisodeActions{Actions: out, Timestamp: model.Timestamp(time.Unix(f.clock+1, 0))})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
