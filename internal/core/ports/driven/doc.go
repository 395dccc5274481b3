// Package driven defines the outbound ports the extraction core depends
// on: workspace scanning, destination publishing, the evolution log, the
// publication history and configuration storage. Adapters implement
// these interfaces.
package driven
