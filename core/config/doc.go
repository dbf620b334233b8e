// Package config provides configuration management for Storygrabber.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Log: Logging level and format
//   - Cache: snapshot cache backend and freshness thresholds
//   - Storage: S3/MinIO credentials for the object cache backend
//   - Database: run history database connection details
//   - Storygraph: FlareSolverr endpoint and scrape limits
//   - Library: LazyLibrarian host and API key
//   - Reconcile: concurrency and report freshness
//   - Sync: users and interval for the periodic batch job
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
