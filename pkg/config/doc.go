// Package config handles configuration management for a3update.
// It layers embedded TOML defaults, an optional a3update.toml, a .env file
// and environment variables into a single Config value that is built once
// at startup and passed explicitly to every component.
package config
