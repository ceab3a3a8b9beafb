// Package config loads the zoomvault configuration from defaults, an
// optional YAML file and ZOOMVAULT_* environment variables.
package config
