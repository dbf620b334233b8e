package library

import "fmt"

// Config holds configuration for the library-manager API client.
type Config struct {
	// Host is the manager host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the manager port.
	Port int `mapstructure:"port" default:"5299"`
	// ApiKey is the manager API key.
	ApiKey string `mapstructure:"api_key" default:""`
	// UseHTTPS selects https for manager requests.
	UseHTTPS bool `mapstructure:"use_https" default:"false"`
	// TimeoutSeconds is the HTTP timeout for manager calls.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// HoldingsTTLSeconds is how long the in-memory holdings snapshot
	// used for candidate lookups stays fresh.
	HoldingsTTLSeconds int `mapstructure:"holdings_ttl_seconds" default:"60"`
}

// BaseURL returns the manager API root.
func (c Config) BaseURL() string {
	protocol := "http"
	if c.UseHTTPS {
		protocol = "https"
	}
	return fmt.Sprintf("%s://%s:%d/api", protocol, c.Host, c.Port)
}
