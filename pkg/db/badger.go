package db

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dgraph-io/badger"
	"github.com/dgraph-io/badger/options"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/mxpv/mygpo/pkg/model"
)

const (
	versionPath        = "mygpo/version"
	statePrefix        = "device/"
	statePath          = "device/%s"
	subscriptionPrefix = "subscription/%s/"
	subscriptionPath   = "subscription/%s/%s" // DeviceID + podcast URL
)

type Badger struct {
	db  *badger.DB
	now func() time.Time
}

var _ Storage = (*Badger)(nil)

func NewBadger(config *Config) (*Badger, error) {
	dir := config.Dir

	log.Infof("opening database %q", dir)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "could not mkdir database dir")
	}

	opts := badger.DefaultOptions(dir).
		WithLogger(log.StandardLogger()).
		WithTruncate(true)

	if config.Badger != nil {
		opts.Truncate = config.Badger.Truncate
		if config.Badger.FileIO {
			opts.ValueLogLoadingMode = options.FileIO
		}
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	storage := &Badger{db: db, now: time.Now}

	if err := db.Update(func(txn *badger.Txn) error {
		if err := storage.setObj(txn, []byte(versionPath), CurrentVersion, false); err != nil && err != model.ErrAlreadyExists {
			return err
		}
		return nil
	}); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to read database version")
	}

	return storage, nil
}

func (b *Badger) Close() error {
	log.Debug("closing database")
	return b.db.Close()
}

func (b *Badger) Version() (int, error) {
	version := -1

	err := b.db.View(func(txn *badger.Txn) error {
		return b.getObj(txn, []byte(versionPath), &version)
	})

	return version, err
}

func (b *Badger) GetState(_ context.Context, deviceID string) (*model.SyncState, error) {
	var state model.SyncState

	if err := b.db.View(func(txn *badger.Txn) error {
		return b.getObj(txn, b.getKey(statePath, deviceID), &state)
	}); err != nil {
		return nil, err
	}

	return &state, nil
}

func (b *Badger) SetRegistered(_ context.Context, deviceID string) error {
	return b.updateState(deviceID, func(_ *badger.Txn, state *model.SyncState) error {
		state.Registered = true
		return nil
	})
}

func (b *Badger) ApplyUpdates(_ context.Context, deviceID string, updates *model.DeviceUpdates) ([]model.Podcast, error) {
	if updates == nil {
		return nil, errors.New("nil updates")
	}

	var removed []model.Podcast

	err := b.updateState(deviceID, func(txn *badger.Txn, state *model.SyncState) error {
		for _, url := range updates.Remove {
			key := b.getKey(subscriptionPath, deviceID, url)

			podcast := model.Podcast{URL: url}
			if err := b.getObj(txn, key, &podcast); err == model.ErrNotFound {
				// Not mirrored locally, still report it
				removed = append(removed, podcast)
				continue
			} else if err != nil {
				return errors.Wrapf(err, "failed to query podcast %q", url)
			}

			if err := txn.Delete(key); err != nil {
				return errors.Wrapf(err, "failed to delete podcast %q", url)
			}

			state.Subscriptions--
			removed = append(removed, podcast)
		}

		for idx := range updates.Add {
			podcast := updates.Add[idx]
			key := b.getKey(subscriptionPath, deviceID, podcast.URL)

			if _, err := txn.Get(key); err == badger.ErrKeyNotFound {
				state.Subscriptions++
			} else if err != nil {
				return errors.Wrapf(err, "failed to check podcast %q", podcast.URL)
			}

			if err := b.setObj(txn, key, &podcast, true); err != nil {
				return errors.Wrapf(err, "failed to save podcast %q", podcast.URL)
			}
		}

		if state.Subscriptions < 0 {
			state.Subscriptions = 0
		}

		if cursor := updates.Timestamp.Unix(); cursor >= state.Cursor {
			state.Cursor = cursor
		} else {
			log.WithField("device_id", deviceID).Warnf("ignoring cursor %d older than stored %d", cursor, state.Cursor)
		}

		state.LastSync = b.now().UTC()
		return nil
	})

	if err != nil {
		return nil, err
	}

	return removed, nil
}

func (b *Badger) GetSubscription(_ context.Context, deviceID string, url string) (*model.Podcast, error) {
	var (
		podcast model.Podcast
		key     = b.getKey(subscriptionPath, deviceID, url)
	)

	if err := b.db.View(func(txn *badger.Txn) error {
		return b.getObj(txn, key, &podcast)
	}); err != nil {
		return nil, err
	}

	return &podcast, nil
}

func (b *Badger) WalkSubscriptions(_ context.Context, deviceID string, cb func(podcast *model.Podcast) error) error {
	return b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = b.getKey(subscriptionPrefix, deviceID)
		opts.PrefetchValues = true
		return b.iterator(txn, opts, func(item *badger.Item) error {
			podcast := &model.Podcast{}
			if err := b.unmarshalObj(item, podcast); err != nil {
				return err
			}

			return cb(podcast)
		})
	})
}

func (b *Badger) WalkStates(_ context.Context, cb func(state *model.SyncState) error) error {
	return b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = b.getKey(statePrefix)
		opts.PrefetchValues = true
		return b.iterator(txn, opts, func(item *badger.Item) error {
			state := &model.SyncState{}
			if err := b.unmarshalObj(item, state); err != nil {
				return err
			}

			return cb(state)
		})
	})
}

func (b *Badger) DeleteDevice(_ context.Context, deviceID string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		stateKey := b.getKey(statePath, deviceID)
		if err := txn.Delete(stateKey); err != nil {
			return errors.Wrapf(err, "failed to delete device %q", deviceID)
		}

		opts := badger.DefaultIteratorOptions
		opts.Prefix = b.getKey(subscriptionPrefix, deviceID)
		opts.PrefetchValues = false
		if err := b.iterator(txn, opts, func(item *badger.Item) error {
			return txn.Delete(item.KeyCopy(nil))
		}); err != nil {
			return errors.Wrapf(err, "failed to iterate subscriptions for device %q", deviceID)
		}

		return nil
	})
}

// updateState loads (or creates) device state, lets cb mutate it and saves it back in one transaction.
func (b *Badger) updateState(deviceID string, cb func(txn *badger.Txn, state *model.SyncState) error) error {
	key := b.getKey(statePath, deviceID)

	return b.db.Update(func(txn *badger.Txn) error {
		state := model.SyncState{DeviceID: deviceID}
		if err := b.getObj(txn, key, &state); err != nil && err != model.ErrNotFound {
			return err
		}

		if err := cb(txn, &state); err != nil {
			return err
		}

		if state.DeviceID != deviceID {
			return errors.New("can't change device ID")
		}

		return b.setObj(txn, key, &state, true)
	})
}

func (b *Badger) iterator(txn *badger.Txn, opts badger.IteratorOptions, callback func(item *badger.Item) error) error {
	iter := txn.NewIterator(opts)
	defer iter.Close()

	for iter.Rewind(); iter.Valid(); iter.Next() {
		if err := callback(iter.Item()); err != nil {
			return err
		}
	}

	return nil
}

func (b *Badger) getKey(format string, a ...interface{}) []byte {
	resourcePath := fmt.Sprintf(format, a...)
	fullPath := fmt.Sprintf("mygpo/v%d/%s", CurrentVersion, resourcePath)

	return []byte(fullPath)
}

func (b *Badger) setObj(txn *badger.Txn, key []byte, obj interface{}, overwrite bool) error {
	if !overwrite {
		_, err := txn.Get(key)
		if err == nil {
			return model.ErrAlreadyExists
		} else if err != badger.ErrKeyNotFound {
			return errors.Wrap(err, "failed to check whether key exists")
		}
	}

	data, err := json.Marshal(obj)
	if err != nil {
		return errors.Wrapf(err, "failed to serialize object for key %q", key)
	}

	return txn.Set(key, data)
}

func (b *Badger) getObj(txn *badger.Txn, key []byte, out interface{}) error {
	item, err := txn.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return model.ErrNotFound
		}

		return err
	}

	return b.unmarshalObj(item, out)
}

func (b *Badger) unmarshalObj(item *badger.Item, out interface{}) error {
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, out)
	})
}
