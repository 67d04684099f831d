package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/mxpv/mygpo/pkg/db"
	"github.com/mxpv/mygpo/pkg/feed"
	"github.com/mxpv/mygpo/pkg/model"
)

// Environment variables that supply credentials when the config file omits them.
const (
	EnvUsername = "GPODDER_NET_USERNAME"
	EnvPassword = "GPODDER_NET_PASSWORD"
	EnvToken    = "GPODDER_NET_TOKEN"
	EnvDeviceID = "GPODDER_NET_DEVICEID"
)

type Config struct {
	// Server is the web server serving OPML exports
	Server Server `toml:"server"`
	// GPodder is the account and API endpoint to sync with
	GPodder GPodder `toml:"gpodder"`
	// Log is the optional logging configuration
	Log Log `toml:"log"`
	// Database configuration
	Database db.Config `toml:"database"`
	// Devices to keep in sync. The table key is the device ID.
	Devices map[string]*Device `toml:"devices"`
}

type Server struct {
	// Hostname to use for OPML links
	Hostname string `toml:"hostname"`
	// Port is a server port to listen to
	Port int `toml:"port"`
	// BindAddress is the address to bind to, "*" means all interfaces
	BindAddress string `toml:"bind_address"`
	// Path is an optional prefix to serve exports under
	Path string `toml:"path"`
	// DataDir is a directory to keep OPML exports
	DataDir string `toml:"data_dir"`
}

type GPodder struct {
	// URL of the API, https://gpodder.net by default
	URL      string `toml:"url"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	// Token is used instead of the password when set
	Token string `toml:"token"`
	// Timeout of a single API call
	Timeout   time.Duration `toml:"timeout"`
	UserAgent string        `toml:"user_agent"`
}

type Log struct {
	// Filename to write the log to (instead of stdout)
	Filename string `toml:"filename"`
	// MaxSize is the maximum size of the log file in MB
	MaxSize int `toml:"max_size"`
	// MaxBackups is the maximum number of log file backups to keep after rotation
	MaxBackups int `toml:"max_backups"`
	// MaxAge is the maximum number of days to keep the logs for
	MaxAge int `toml:"max_age"`
	// Compress old backups
	Compress bool `toml:"compress"`
}

// Device is a device to sync
type Device struct {
	ID string `toml:"-"`
	// Caption and Type are registered on the server on the first sync
	Caption string           `toml:"caption"`
	Type    model.DeviceType `toml:"type"`
	// UpdatePeriod is how often to pull updates, ignored when CronSchedule is set.
	UpdatePeriod time.Duration `toml:"update_period"`
	// CronSchedule in cron format, e.g. "@every 30m"
	CronSchedule string `toml:"cron_schedule"`
	// IncludeActions requests episode updates along with subscription changes
	IncludeActions bool `toml:"include_actions"`
	// OPML publishes the device subscriptions as <id>.opml
	OPML bool `toml:"opml"`
	// OnChange hooks run once per added or removed subscription
	OnChange []*feed.ExecHook `toml:"on_change"`
}

// LoadEnv reads KEY=VALUE pairs from path into the environment.
// Variables already set are not overwritten. A missing file is not an error.
func LoadEnv(path string) error {
	if path == "" {
		return nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Debugf("env file %q not found, skipping", path)
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "failed to load env file: %s", path)
	}

	log.Debugf("loaded environment from %q", path)
	return nil
}

// LoadConfig loads TOML configuration from a file path
func LoadConfig(path string) (*Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file: %s", path)
	}

	config := Config{}
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal toml")
	}

	for id, d := range config.Devices {
		if d == nil {
			d = &Device{}
			config.Devices[id] = d
		}
		d.ID = id
	}

	config.applyEnv()
	config.applyDefaults(path)

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) applyEnv() {
	if c.GPodder.Username == "" {
		c.GPodder.Username = strings.TrimSpace(os.Getenv(EnvUsername))
	}

	if c.GPodder.Password == "" && c.GPodder.Token == "" {
		c.GPodder.Password = os.Getenv(EnvPassword)
		c.GPodder.Token = strings.TrimSpace(os.Getenv(EnvToken))
	}

	if len(c.Devices) == 0 {
		if id := strings.TrimSpace(os.Getenv(EnvDeviceID)); id != "" {
			c.Devices = map[string]*Device{id: {ID: id}}
		}
	}
}

func (c *Config) validate() error {
	var result *multierror.Error

	if c.GPodder.Username == "" {
		result = multierror.Append(result, errors.Errorf("username is required (set it in config or %s)", EnvUsername))
	}

	if c.GPodder.Password == "" && c.GPodder.Token == "" {
		result = multierror.Append(result, errors.Errorf("password or token is required (set it in config, %s or %s)", EnvPassword, EnvToken))
	}

	if len(c.Devices) == 0 {
		result = multierror.Append(result, errors.New("at least one device must be specified"))
	}

	for id, d := range c.Devices {
		if !model.ValidDeviceID(id) {
			result = multierror.Append(result, errors.Errorf("invalid device id %q", id))
		}

		if d.Type != "" && !d.Type.Valid() {
			result = multierror.Append(result, errors.Errorf("unsupported device type %q for %q", string(d.Type), id))
		}

		if d.OPML && c.Server.DataDir == "" {
			result = multierror.Append(result, errors.Errorf("data directory is required to publish OPML for %q", id))
		}

		for idx, hook := range d.OnChange {
			if hook == nil || len(hook.Command) == 0 {
				result = multierror.Append(result, errors.Errorf("hook %d of %q has no command", idx, id))
			}
		}
	}

	return result.ErrorOrNil()
}

func (c *Config) applyDefaults(configPath string) {
	if c.Server.Hostname == "" {
		if c.Server.Port != 0 && c.Server.Port != 80 {
			c.Server.Hostname = fmt.Sprintf("http://localhost:%d", c.Server.Port)
		} else {
			c.Server.Hostname = "http://localhost"
		}
	}

	if c.GPodder.URL == "" {
		c.GPodder.URL = model.DefaultBaseURL
	}

	if c.GPodder.Timeout == 0 {
		c.GPodder.Timeout = model.DefaultTimeout
	}

	if c.Log.Filename != "" {
		if c.Log.MaxSize == 0 {
			c.Log.MaxSize = model.DefaultLogMaxSize
		}
		if c.Log.MaxAge == 0 {
			c.Log.MaxAge = model.DefaultLogMaxAge
		}
		if c.Log.MaxBackups == 0 {
			c.Log.MaxBackups = model.DefaultLogMaxBackups
		}
	}

	if c.Database.Dir == "" {
		c.Database.Dir = filepath.Join(filepath.Dir(configPath), "db")
	}

	for _, d := range c.Devices {
		if d.UpdatePeriod == 0 {
			d.UpdatePeriod = model.DefaultUpdatePeriod
		}

		if d.CronSchedule == "" {
			d.CronSchedule = fmt.Sprintf("@every %s", d.UpdatePeriod.String())
		}
	}
}
