// Package sqlite provides the SQLite-backed publication history store.
// The database lives under the bridge data directory and is migrated
// with SQL files embedded at compile time.
package sqlite
