package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mxpv/mygpo/pkg/config"
	"github.com/mxpv/mygpo/pkg/db"
	"github.com/mxpv/mygpo/pkg/feed"
	"github.com/mxpv/mygpo/pkg/fs"
	"github.com/mxpv/mygpo/pkg/gpodder"
)

type Opts struct {
	ConfigPath string `long:"config" short:"c" default:"config.toml" env:"MYGPO_CONFIG_PATH" description:"path to TOML configuration"`
	EnvFile    string `long:"env-file" default:".env" env:"MYGPO_ENV_FILE" description:"file with GPODDER_NET_* credentials"`
	Debug      bool   `long:"debug"`
	NoBanner   bool   `long:"no-banner"`
	Once       bool   `long:"once" description:"sync every device once and exit"`
	ImportOPML string `long:"import-opml" description:"subscribe a device to every feed of an OPML file and exit"`
	Device     string `long:"device" description:"device to import into, required with more than one device configured"`
}

const banner = `
 _ __ ___  _   _  __ _ _ __   ___
| '_ ' _ \| | | |/ _' | '_ \ / _ \
| | | | | | |_| | (_| | |_) | (_) |
|_| |_| |_|\__, |\__, | .__/ \___/
           |___/ |___/|_|
`

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	log.SetFormatter(&log.TextFormatter{
		TimestampFormat: time.RFC3339,
		FullTimestamp:   true,
	})

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Parse args
	opts := Opts{}
	_, err := flags.Parse(&opts)
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		log.WithError(err).Fatal("failed to parse command line arguments")
	}

	if opts.Debug {
		log.SetLevel(log.DebugLevel)
	}

	if !opts.NoBanner {
		log.Info(banner)
	}

	log.WithFields(log.Fields{
		"version": version,
		"commit":  commit,
		"date":    date,
	}).Info("running mygpo")

	if err := config.LoadEnv(opts.EnvFile); err != nil {
		log.WithError(err).Fatal("failed to load environment")
	}

	// Load TOML file
	log.Debugf("loading configuration %q", opts.ConfigPath)
	cfg, err := config.LoadConfig(opts.ConfigPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration file")
	}

	if cfg.Log.Filename != "" {
		log.Infof("writing logs to %s", cfg.Log.Filename)
		log.SetOutput(&lumberjack.Logger{
			Filename:   cfg.Log.Filename,
			MaxSize:    cfg.Log.MaxSize,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAge,
			Compress:   cfg.Log.Compress,
		})
	}

	client, err := gpodder.New(gpodder.Config{
		BaseURL:   cfg.GPodder.URL,
		Username:  cfg.GPodder.Username,
		Password:  cfg.GPodder.Password,
		Token:     cfg.GPodder.Token,
		Timeout:   cfg.GPodder.Timeout,
		UserAgent: userAgent(cfg.GPodder.UserAgent),
	})
	if err != nil {
		log.WithError(err).Fatal("failed to create gpodder client")
	}

	database, err := db.NewBadger(&cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}

	defer func() {
		if err := database.Close(); err != nil {
			log.WithError(err).Error("failed to close database")
		}
	}()

	ver, err := database.Version()
	if err != nil {
		log.WithError(err).Fatal("failed to read database version")
	}
	if ver != db.CurrentVersion {
		log.Fatalf("unsupported database version %d, expected %d", ver, db.CurrentVersion)
	}

	var storage *fs.Local
	if cfg.Server.DataDir != "" {
		storage, err = fs.NewLocal(cfg.Server.DataDir, cfg.Server.Hostname, cfg.Server.Path)
		if err != nil {
			log.WithError(err).Fatal("failed to open storage")
		}
	}

	syncer, err := newSyncer(client, database, storage)
	if err != nil {
		log.WithError(err).Fatal("failed to create syncer")
	}

	if opts.ImportOPML != "" {
		if err := importOPML(ctx, syncer, cfg, opts.ImportOPML, opts.Device); err != nil {
			log.WithError(err).Fatal("import failed")
		}
		return
	}

	if err := syncer.Prune(ctx, cfg.Devices); err != nil {
		log.WithError(err).Error("failed to prune removed devices")
	}

	if opts.Once {
		if err := syncAll(ctx, syncer, cfg); err != nil {
			log.WithError(err).Fatal("sync failed")
		}
		return
	}

	group, ctx := errgroup.WithContext(ctx)

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(log.StandardLogger()))))

	group.Go(func() error {
		defer func() {
			log.Info("shutting down cron")
			<-c.Stop().Done()
		}()

		for _, device := range cfg.Devices {
			device := device

			_, err := c.AddFunc(device.CronSchedule, func() {
				if err := syncer.Sync(ctx, device); err != nil {
					log.WithError(err).Errorf("failed to sync device: %s", device.ID)
				}
			})

			if err != nil {
				return errors.Wrapf(err, "can't create cron task for device: %s", device.ID)
			}

			log.Debugf("-> %s (schedule %q)", device.ID, device.CronSchedule)

			// Perform initial sync after CLI restart
			if err := syncer.Sync(ctx, device); err != nil {
				log.WithError(err).Errorf("failed to sync device: %s", device.ID)
			}
		}

		c.Start()

		<-ctx.Done()
		return ctx.Err()
	})

	// Run web server
	if storage != nil {
		srv := NewServer(cfg.Server, storage)

		group.Go(func() error {
			log.Infof("running listener at %s", srv.Addr)
			return srv.ListenAndServe()
		})

		group.Go(func() error {
			<-ctx.Done()

			log.Info("shutting down web server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.WithError(err).Error("server shutdown failed")
			}
			return nil
		})
	}

	group.Go(func() error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			cancel()
			return nil
		}
	})

	if err := group.Wait(); err != nil && (err != context.Canceled && err != http.ErrServerClosed) {
		log.WithError(err).Error("wait error")
	}

	log.Info("gracefully stopped")
}

func newSyncer(client gpodderClient, database stateStorage, storage *fs.Local) (*Syncer, error) {
	// Avoid a typed nil inside the interface
	if storage == nil {
		return NewSyncer(client, database, nil)
	}
	return NewSyncer(client, database, storage)
}

func userAgent(configured string) string {
	if configured != "" {
		return configured
	}
	return "mygpo/" + version
}

func syncAll(ctx context.Context, syncer *Syncer, cfg *config.Config) error {
	group, ctx := errgroup.WithContext(ctx)

	for _, device := range cfg.Devices {
		device := device
		group.Go(func() error {
			return syncer.Sync(ctx, device)
		})
	}

	return group.Wait()
}

func importOPML(ctx context.Context, syncer *Syncer, cfg *config.Config, path string, deviceID string) error {
	if deviceID == "" {
		if len(cfg.Devices) != 1 {
			return errors.New("--device is required when more than one device is configured")
		}
		for id := range cfg.Devices {
			deviceID = id
		}
	}

	if _, ok := cfg.Devices[deviceID]; !ok {
		return errors.Errorf("device %q is not configured", deviceID)
	}

	file, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", path)
	}
	defer file.Close()

	urls, err := feed.ParseOPML(file)
	if err != nil {
		return err
	}

	_, err = syncer.Import(ctx, deviceID, urls)
	return err
}
