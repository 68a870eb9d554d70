// Package auth implements user authentication for the gateway.
//
// It covers password hashing with bcrypt, HMAC-signed session tokens,
// anonymous guest sessions, and API key generation. Persistence is
// delegated to a UserStore so the package stays independent of the
// storage backend.
package auth
