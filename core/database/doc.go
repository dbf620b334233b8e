// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to configure MySQL or SQLite
// connections based on the application's configuration. The database is
// optional: it backs the reconciliation run history, and the rest of
// the application works without it.
//
// # Connect
//
// The Connect function establishes a connection using the configured
// driver. SQLite is the default and needs no external service; MySQL
// suits shared deployments.
//
// # Schema Inspection
//
// GetTableColumns retrieves table columns for either dialect, used to
// verify the run history schema matches the persisted model.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logger.Warn("Running without run history", zap.Error(err))
//	}
package database
