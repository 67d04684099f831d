package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/mxpv/mygpo/pkg/config"
	"github.com/mxpv/mygpo/pkg/feed"
	"github.com/mxpv/mygpo/pkg/model"
)

type Syncer struct {
	client  gpodderClient
	db      stateStorage
	storage fileStorage
}

func NewSyncer(client gpodderClient, db stateStorage, storage fileStorage) (*Syncer, error) {
	if client == nil {
		return nil, errors.New("client is required")
	}
	if db == nil {
		return nil, errors.New("database is required")
	}

	return &Syncer{client: client, db: db, storage: storage}, nil
}

// Sync pulls changes of a single device since the last stored cursor.
func (s *Syncer) Sync(ctx context.Context, device *config.Device) error {
	logger := log.WithField("device_id", device.ID)
	logger.Info("-> syncing device")
	started := time.Now()

	state, err := s.db.GetState(ctx, device.ID)
	if err == model.ErrNotFound {
		state = &model.SyncState{DeviceID: device.ID}
	} else if err != nil {
		return errors.Wrapf(err, "failed to load state of %q", device.ID)
	}

	if !state.Registered {
		if err := s.register(ctx, device); err != nil {
			return err
		}
	}

	logger.Debugf("requesting updates since %d", state.Cursor)
	updates, err := s.client.DeviceUpdates(ctx, device.ID, state.Cursor, device.IncludeActions)
	if err != nil {
		return errors.Wrapf(err, "failed to query updates of %q", device.ID)
	}

	// The first sync mirrors everything the account has, which is not a change
	initial := state.Cursor == 0

	var added []model.Podcast
	if !initial && len(device.OnChange) > 0 {
		if added, err = s.newPodcasts(ctx, device.ID, updates.Add); err != nil {
			return err
		}
	}

	removed, err := s.db.ApplyUpdates(ctx, device.ID, updates)
	if err != nil {
		return errors.Wrapf(err, "failed to save updates of %q", device.ID)
	}

	logger.WithFields(log.Fields{
		"added":    len(updates.Add),
		"removed":  len(removed),
		"episodes": len(updates.Updates),
		"cursor":   updates.Timestamp.Unix(),
	}).Info("received updates")

	if initial {
		logger.Debug("initial sync, skipping hooks")
	} else {
		s.runHooks(ctx, device, added, removed)
	}

	if device.OPML {
		if err := s.publish(ctx, device.ID); err != nil {
			return err
		}
	}

	logger.Infof("successfully synced device in %s", time.Since(started))
	return nil
}

func (s *Syncer) register(ctx context.Context, device *config.Device) error {
	caption := device.Caption
	if caption == "" {
		caption = device.ID
	}

	kind := device.Type
	if kind == "" {
		kind = model.DefaultDeviceType
	}

	log.WithFields(log.Fields{
		"device_id": device.ID,
		"type":      kind,
	}).Infof("registering device %q", caption)

	if err := s.client.UpdateDeviceData(ctx, device.ID, model.DeviceData{Caption: &caption, Type: &kind}); err != nil {
		return errors.Wrapf(err, "failed to register device %q", device.ID)
	}

	if err := s.db.SetRegistered(ctx, device.ID); err != nil {
		return errors.Wrapf(err, "failed to save registration of %q", device.ID)
	}

	return nil
}

// newPodcasts filters out podcasts already mirrored. The since cursor is
// inclusive, so the server repeats changes made at the cursor timestamp.
func (s *Syncer) newPodcasts(ctx context.Context, deviceID string, podcasts []model.Podcast) ([]model.Podcast, error) {
	var out []model.Podcast
	for _, podcast := range podcasts {
		_, err := s.db.GetSubscription(ctx, deviceID, podcast.URL)
		if err == model.ErrNotFound {
			out = append(out, podcast)
			continue
		} else if err != nil {
			return nil, errors.Wrapf(err, "failed to query podcast %q", podcast.URL)
		}

		log.WithField("device_id", deviceID).Debugf("%s is already mirrored", podcast.URL)
	}
	return out, nil
}

// Prune drops local state and published OPML of devices no longer configured.
func (s *Syncer) Prune(ctx context.Context, devices map[string]*config.Device) error {
	var stale []string
	if err := s.db.WalkStates(ctx, func(state *model.SyncState) error {
		if _, ok := devices[state.DeviceID]; !ok {
			stale = append(stale, state.DeviceID)
		}
		return nil
	}); err != nil {
		return errors.Wrap(err, "failed to walk device states")
	}

	for _, id := range stale {
		log.WithField("device_id", id).Info("device is no longer configured, pruning")

		if err := s.db.DeleteDevice(ctx, id); err != nil {
			return errors.Wrapf(err, "failed to delete device %q", id)
		}

		if s.storage == nil {
			continue
		}

		if err := s.storage.Delete(ctx, fmt.Sprintf("%s.opml", id)); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "failed to delete OPML of %q", id)
		}
	}

	return nil
}

// runHooks invokes every hook once per change. Failures are logged and don't stop the sync.
func (s *Syncer) runHooks(ctx context.Context, device *config.Device, added []model.Podcast, removed []model.Podcast) {
	if len(device.OnChange) == 0 {
		return
	}

	invoke := func(action string, podcast model.Podcast) {
		env := feed.ChangeEnv(device.ID, action, podcast)
		for idx, hook := range device.OnChange {
			if err := hook.Invoke(ctx, env); err != nil {
				log.WithError(err).WithFields(log.Fields{
					"device_id": device.ID,
					"hook":      idx,
					"url":       podcast.URL,
				}).Error("failed to execute hook")
			}
		}
	}

	for _, podcast := range added {
		invoke(feed.ActionAdd, podcast)
	}

	for _, podcast := range removed {
		invoke(feed.ActionRemove, podcast)
	}
}

func (s *Syncer) publish(ctx context.Context, deviceID string) error {
	if s.storage == nil {
		return errors.New("no storage configured to publish OPML")
	}

	doc, err := feed.BuildOPML(ctx, deviceID, s.db)
	if err != nil {
		return errors.Wrap(err, "failed to build OPML")
	}

	name := fmt.Sprintf("%s.opml", deviceID)
	if _, err := s.storage.Create(ctx, name, strings.NewReader(doc)); err != nil {
		return errors.Wrapf(err, "failed to write %s", name)
	}

	if url, err := s.storage.URL(ctx, name); err == nil {
		log.Debugf("published OPML at %s", url)
	}

	return nil
}

// Import subscribes the device to every URL it doesn't have yet.
// Returns the number of podcasts added.
func (s *Syncer) Import(ctx context.Context, deviceID string, urls []string) (int, error) {
	current, err := s.client.DeviceSubscriptions(ctx, deviceID)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to query subscriptions of %q", deviceID)
	}

	known := make(map[string]bool, len(current))
	for _, url := range current {
		known[url] = true
	}

	var add []string
	for _, url := range urls {
		if !known[url] {
			known[url] = true
			add = append(add, url)
		}
	}

	if len(add) == 0 {
		log.Infof("nothing to import, %q already has all %d podcast(s)", deviceID, len(urls))
		return 0, nil
	}

	resp, err := s.client.UploadSubscriptionChanges(ctx, deviceID, add, nil)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to upload subscriptions of %q", deviceID)
	}

	for from, to := range resp.Rewritten() {
		log.Warnf("server rewrote %s to %s", from, to)
	}

	log.Infof("imported %d podcast(s) to %q", len(add), deviceID)
	return len(add), nil
}
