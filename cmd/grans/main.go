package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/grans-labs/grans-cli/internal/adapters/driving/cli"
	"github.com/grans-labs/grans-cli/internal/core/domain"
)

// Exit codes.
const (
	exitOK        = 0
	exitUserError = 1
	exitStoreIO   = 2
)

func main() {
	err := cli.Execute()
	if err == nil {
		os.Exit(exitOK)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)

	switch {
	case errors.Is(err, domain.ErrStoreUnavailable),
		errors.Is(err, domain.ErrMigrationFailed),
		errors.Is(err, domain.ErrReadOnly):
		os.Exit(exitStoreIO)
	default:
		os.Exit(exitUserError)
	}
}
