package errors

import (
	"fmt"
	"log/slog"
)

// CLIErrorAdapter handles error presentation and exit code determination for CLI applications.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	switch GetCategory(err) {
	case CategoryConfig:
		return 7 // Configuration error
	case CategoryInput:
		return 3 // Missing or malformed help dump
	case CategoryTemplate, CategoryFileSystem:
		return 11 // Build error
	case CategoryLint:
		return 2 // Lint errors found
	case CategoryDrift:
		return 4 // Check found differences
	default:
		return 1
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	if a.verbose {
		return fmt.Sprintf("Error: %v", err)
	}

	switch GetCategory(err) {
	case CategoryInput:
		return fmt.Sprintf("Input error: %v", err)
	case CategoryConfig:
		return fmt.Sprintf("Configuration error: %v", err)
	case CategoryDrift:
		return "Reference pages are out of date; run 'refgen generate' to refresh them"
	case CategoryLint:
		return "Reference pages have lint errors"
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

// Report logs the error with its structured context and returns the exit code to use.
func (a *CLIErrorAdapter) Report(err error) int {
	if err == nil {
		return 0
	}
	attrs := []any{"category", string(GetCategory(err))}
	var rge *RefgenError
	if As(err, &rge) {
		for k, v := range rge.Context {
			attrs = append(attrs, k, v)
		}
	}
	a.logger.Error(a.FormatError(err), attrs...)
	return a.ExitCodeFor(err)
}
