package reconcile

import "time"

// Config holds configuration for reconciliation passes.
type Config struct {
	// Concurrency bounds parallel per-book candidate queries, keeping
	// the manager's API from being hammered.
	Concurrency int `mapstructure:"concurrency" default:"4"`
	// TTLMinutes is how long an assembled report stays fresh.
	TTLMinutes int `mapstructure:"ttl_minutes" default:"60"`
}

// TTL returns the report freshness threshold.
func (c Config) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}
