package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
}

// ValidationResult holds the results of a configuration validation.
type ValidationResult struct {
	// Errors contains all validation errors found.
	Errors []ValidationError
	// Warnings contains non-fatal issues.
	Warnings []ValidationError
}

// IsValid returns true if there are no validation errors.
func (vr *ValidationResult) IsValid() bool {
	return len(vr.Errors) == 0
}

// Error returns a combined error message if there are errors, nil otherwise.
func (vr *ValidationResult) Error() error {
	if len(vr.Errors) == 0 {
		return nil
	}

	messages := make([]string, 0, len(vr.Errors))
	for _, e := range vr.Errors {
		messages = append(messages, e.Error())
	}
	return fmt.Errorf("validation failed: %s", strings.Join(messages, "; "))
}

// AddError adds a validation error.
func (vr *ValidationResult) AddError(field, message string) {
	vr.Errors = append(vr.Errors, ValidationError{Field: field, Message: message})
}

// AddWarning adds a validation warning.
func (vr *ValidationResult) AddWarning(field, message string) {
	vr.Warnings = append(vr.Warnings, ValidationError{Field: field, Message: message})
}

const maxSwatchCell = 256

// Validate checks cfg for values the tools cannot act on.
func Validate(cfg *Config) *ValidationResult {
	result := &ValidationResult{}

	if strings.TrimSpace(cfg.Output.Title) == "" {
		result.AddWarning("output.title", "empty title")
	}

	switch strings.ToLower(cfg.Swatch.Format) {
	case "png", "bmp":
	default:
		result.AddError("swatch.format", fmt.Sprintf("must be png or bmp, got %q", cfg.Swatch.Format))
	}
	if cfg.Swatch.Cell <= 0 {
		result.AddError("swatch.cell", fmt.Sprintf("must be positive, got %d", cfg.Swatch.Cell))
	} else if cfg.Swatch.Cell > maxSwatchCell {
		result.AddError("swatch.cell", fmt.Sprintf("must be at most %d, got %d", maxSwatchCell, cfg.Swatch.Cell))
	}

	if cfg.Watch.Debounce < 0 {
		result.AddError("watch.debounce", fmt.Sprintf("must be non-negative, got %v", cfg.Watch.Debounce))
	}
	if cfg.Watch.Enabled && cfg.Output.ToStdout() {
		result.AddError("watch", "requires an output file")
	}

	if _, err := ParseLevel(cfg.Log.Level); err != nil {
		result.AddError("log.level", err.Error())
	}
	switch cfg.Log.Format {
	case "text", "json":
	default:
		result.AddError("log.format", fmt.Sprintf("must be text or json, got %q", cfg.Log.Format))
	}

	return result
}
