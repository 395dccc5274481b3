// Package domain contains the core business types for the bridge
// extraction workflow: candidates discovered in a private workspace,
// their scores, and the records produced when they are published.
package domain
