// Package database handles database connections.
//
// It provides a wrapper around GORM to configure connections based on the
// application's configuration. MySQL is the production driver; sqlite (including
// ":memory:") serves local development and the test suite.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
