// Package server holds the HTTP server configuration.
//
// The main application entry point handles the server startup; this package
// defines the configuration structure for server settings, including the
// listen port and the API keys.
//
// # Keys
//
// Two keys exist: ApiKey protects the regular collaborator surface, AdminKey
// protects the administrative endpoints (ledger purges, hidden-achievement
// listings). When AdminKey is unset, ApiKey covers both surfaces.
package server
