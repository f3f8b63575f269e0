// Package config provides configuration management for the tracker.
//
// It utilizes Viper for loading configuration from environment variables and a
// local .env file (via godotenv).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Server: HTTP server settings (port, api keys)
//   - Database: MySQL/sqlite connection details
//   - Storage: S3/MinIO credentials and the profile cache bucket
//   - Upstream: third-party provider base URL and retry policy
//   - Log: logging level and format
//   - Tasks: background task cadences
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
