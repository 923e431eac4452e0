// Package config loads application configuration from a YAML file
// (config.yml by default), with environment variables as overrides and
// validation through struct tags. Engine tunables are mapped onto
// predict.Config so nothing in the engine reads configuration globals.
package config
