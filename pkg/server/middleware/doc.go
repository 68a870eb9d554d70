// Package middleware provides the HTTP middleware chain for the gateway:
// request IDs, structured request logging, panic recovery, and CORS.
package middleware
