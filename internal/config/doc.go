// Package config loads, merges and validates the application configuration.
//
// Sources are combined in priority order; later sources only fill fields the
// earlier ones left empty:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file (when a path is given by env or flag)
//
// [GetStructuredConfig] is the entry point.
package config
