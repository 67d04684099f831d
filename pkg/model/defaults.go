package model

import (
	"time"
)

const (
	DefaultBaseURL      = "https://gpodder.net"
	DefaultTimeout      = 30 * time.Second
	DefaultUpdatePeriod = time.Hour
	DefaultDeviceType   = DeviceOther

	DefaultLogMaxSize    = 50 // megabytes
	DefaultLogMaxAge     = 30 // days
	DefaultLogMaxBackups = 7

	// MaxListCount is the largest page the directory and suggestion endpoints accept.
	MaxListCount = 100
)
