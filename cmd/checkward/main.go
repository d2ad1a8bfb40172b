// Package main provides the entry point for the checkward CLI.
package main

import (
	"errors"
	"os"

	"github.com/checkward/checkward/internal/domain/invoke"
)

func main() {
	if err := Execute(); err != nil {
		printError(err)
		os.Exit(exitCode(err))
	}
}

// exitCode separates "the checker found problems in the code" from "the tool
// itself failed", so CI pipelines can tell the two apart.
func exitCode(err error) int {
	var runErr *invoke.RunError
	if errors.As(err, &runErr) && runErr.Code == invoke.ErrCodeCheckerFailed {
		return 2
	}
	return 1
}
