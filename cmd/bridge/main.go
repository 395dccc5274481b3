package main

import (
	"errors"
	"os"

	"github.com/aget-labs/bridge-cli/internal/adapters/driving/cli"
	"github.com/aget-labs/bridge-cli/internal/core/domain"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode maps pipeline failures to distinct exit codes so callers can
// script against them.
func exitCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrWorkspaceNotFound):
		return 4
	case errors.Is(err, domain.ErrNameCollision):
		return 3
	case errors.Is(err, domain.ErrNoEligibleCandidates):
		return 2
	default:
		return 1
	}
}
