// Package config provides configuration management for the path store.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Storage: S3/MinIO credentials, endpoint, and startup bucket
//   - Log: Logging level and format
//
// Defaults come from the 'default' struct tags; environment variables map
// onto nested keys with underscores (STORAGE_ACCESS_KEY -> storage.access_key).
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
