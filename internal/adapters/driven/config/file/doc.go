// Package file provides a TOML-backed configuration store in the
// bridge config directory.
package file
