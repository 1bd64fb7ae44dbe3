// Package config loads storectl settings from linkstore.toml.
//
// The file is looked up in the working directory and its parents. Every key
// is optional; missing keys keep their defaults.
//
//	log_level = "debug"          # debug, info, warn, error
//	log_format = "json"          # text or json
//	color = false                # ANSI colors in diagnostics
//	metrics_namespace = "app"    # Prometheus namespace for demo metrics
//	watch_debounce = "250ms"     # delay before watch reloads a changed file
package config
