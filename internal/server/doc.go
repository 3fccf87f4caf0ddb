// Package server runs the HTTP transport: startup, OS signal handling and
// graceful shutdown with a drain timeout.
package server
