// Package mcp provides an MCP (Model Context Protocol) server adapter for bridge.
// It lets AI assistants scan the workspace, preview extractions and publish
// outputs through the extraction pipeline.
package mcp

import "errors"

// ErrMissingExtractor is returned when the extraction service is not provided.
var ErrMissingExtractor = errors.New("mcp: extraction service is required")
