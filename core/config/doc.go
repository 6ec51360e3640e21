// Package config loads application configuration from environment variables
// and an optional .env file.
//
// Defaults are declared next to each field via the `default:` struct tag and
// bound into Viper by reflection, so every key is registered for
// AutomaticEnv. Nested sections map to prefixed variables, e.g.
// STORAGE_BUCKET_OVERRIDE -> storage.bucket_override.
package config
