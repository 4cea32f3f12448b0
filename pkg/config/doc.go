// Package config loads and validates the YAML client configuration.
package config
