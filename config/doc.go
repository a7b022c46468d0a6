// Package config loads the worker's process configuration from an optional
// YAML file and environment variables: listener addresses, logging level,
// the dotenv files feeding the handler environment, and the sizing of the
// background queue and metrics pipeline.
package config
