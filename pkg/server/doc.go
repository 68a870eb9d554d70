// Package server provides the gateway's HTTP server: route wiring,
// middleware chain, and graceful shutdown.
package server
