// Package driving defines the inbound ports through which the CLI, MCP
// server and TUI drive the extraction core.
package driving
