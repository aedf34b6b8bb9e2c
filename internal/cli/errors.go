// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Unified error handling for all CLI commands.
//
// STANDARDIZED PATTERN:
//   - ALWAYS return errors (never just print and return nil)
//   - Let the caller decide how to display errors
//   - Map API error kinds to specific exit codes for scripting
//
// ERROR HANDLING: Errors must not be silently ignored
package cli

import (
	"fmt"
	"os"

	"github.com/jeranaias/denimhouse-admin/internal/api"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates configuration file or settings error
	ExitConfigError = 3
	// ExitAuthError indicates authentication failure or an expired session
	ExitAuthError = 4
	// ExitNetworkError indicates the API could not be reached
	ExitNetworkError = 5
	// ExitValidationError indicates the server rejected the input
	ExitValidationError = 6
)

// UsageError marks invalid command usage; it maps to ExitUsageError.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

// ErrMissingArgument creates an error for missing required arguments.
func ErrMissingArgument(argName, usage string) error {
	return &UsageError{Message: fmt.Sprintf("missing %s\nUsage: %s", argName, usage)}
}

// GetExitCode determines the appropriate exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if _, ok := err.(*UsageError); ok {
		return ExitUsageError
	}
	if apiErr := api.AsError(err); apiErr != nil {
		switch apiErr.Kind {
		case api.KindUnauthenticated, api.KindSessionExpired:
			return ExitAuthError
		case api.KindNetworkFailure:
			return ExitNetworkError
		case api.KindValidationFailed:
			return ExitValidationError
		}
	}
	return ExitGeneralError
}

// Exit displays an error and exits with its mapped code. Use this at the top
// of main's command dispatch, not inside handlers.
func Exit(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(GetExitCode(err))
}
