package cache

import "time"

// Config holds configuration for the cache store and its backend.
type Config struct {
	// Backend selects the persistence medium: bolt, memory or s3.
	Backend string `mapstructure:"backend" default:"bolt"`
	// Path is the database file used by the bolt backend.
	Path string `mapstructure:"path" default:"./data/cache.db"`
	// Prefix is the object name prefix used by the s3 backend.
	Prefix string `mapstructure:"prefix" default:"cache/"`
	// Capacity bounds the record count of the memory backend.
	// Zero means unbounded.
	Capacity int `mapstructure:"capacity" default:"0"`
	// SourceTTLMinutes is how long a scraped want-to-read list stays
	// fresh. The report freshness lives with the reconcile feature's
	// own configuration.
	SourceTTLMinutes int `mapstructure:"source_ttl_minutes" default:"60"`
}

// SourceTTL returns the source-list freshness threshold.
func (c Config) SourceTTL() time.Duration {
	return time.Duration(c.SourceTTLMinutes) * time.Minute
}
