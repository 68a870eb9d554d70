// Package store persists users and request events in SQLite.
//
// The store uses a single-writer connection with WAL journaling and a
// busy timeout, and pre-compiles its hot statements. It implements
// auth.UserStore and feeds the analytics endpoint.
package store
