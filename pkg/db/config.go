package db

// Config is the [database] section of the daemon configuration.
type Config struct {
	// Dir keeps sync state, defaults to "db" next to the config file
	Dir    string        `toml:"dir"`
	Badger *BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB configuration parameters
type BadgerConfig struct {
	// Truncate drops a corrupted value log tail instead of refusing to open
	Truncate bool `toml:"truncate"`
	// FileIO avoids mmap for the value log, useful on low memory hosts
	FileIO bool `toml:"file_io"`
}
