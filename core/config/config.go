package config

import (
	"reflect"
	"strings"

	"storygrabber/core/cache"
	"storygrabber/core/database"
	"storygrabber/core/logger"
	"storygrabber/core/server"
	"storygrabber/core/storage"
	"storygrabber/feature/library"
	"storygrabber/feature/reconcile"
	"storygrabber/feature/storygraph"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Cache holds configuration for the snapshot cache.
	Cache cache.Config `mapstructure:"cache"`
	// Storage holds configuration for the object storage backing the
	// s3 cache backend.
	Storage storage.Config `mapstructure:"storage"`
	// Database holds configuration for the run history database.
	Database database.Config `mapstructure:"database"`
	// Storygraph holds configuration for the source-list scraper.
	Storygraph storygraph.Config `mapstructure:"storygraph"`
	// Library holds configuration for the library-manager client.
	Library library.Config `mapstructure:"library"`
	// Reconcile holds configuration for reconciliation passes.
	Reconcile reconcile.Config `mapstructure:"reconcile"`
	// Sync holds configuration for the periodic batch job.
	Sync reconcile.SchedulerConfig `mapstructure:"sync"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
