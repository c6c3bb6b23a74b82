package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Iron-Ham/nikit/internal/styles"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "output.max_width")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// maxOutputWidth bounds output.max_width
const maxOutputWidth = 10000

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateTemp()...)
	errors = append(errors, c.validateRuntime()...)
	errors = append(errors, c.validateOutput()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

func (c *Config) validateTemp() []ValidationError {
	var errors []ValidationError

	dir := c.Temp.Dir
	if dir == "" {
		return nil
	}
	if strings.ContainsRune(dir, '\x00') {
		errors = append(errors, ValidationError{
			Field:   "temp.dir",
			Value:   dir,
			Message: "path contains invalid null character",
		})
	}
	if !filepath.IsAbs(dir) && dir != "~" && !strings.HasPrefix(dir, "~/") {
		errors = append(errors, ValidationError{
			Field:   "temp.dir",
			Value:   dir,
			Message: "must be an absolute path or start with ~/",
		})
	}

	return errors
}

func (c *Config) validateRuntime() []ValidationError {
	var errors []ValidationError

	if strings.ContainsAny(c.Runtime.Manager, " \t/\\") {
		errors = append(errors, ValidationError{
			Field:   "runtime.manager",
			Value:   c.Runtime.Manager,
			Message: "must be a bare executable name",
		})
	}
	if c.Runtime.Manager != "" && strings.TrimSpace(c.Runtime.Prefix) == "" {
		errors = append(errors, ValidationError{
			Field:   "runtime.prefix",
			Value:   c.Runtime.Prefix,
			Message: "cannot be empty when runtime.manager is set",
		})
	}

	return errors
}

func (c *Config) validateOutput() []ValidationError {
	var errors []ValidationError

	if c.Output.MaxWidth < 0 {
		errors = append(errors, ValidationError{
			Field:   "output.max_width",
			Value:   c.Output.MaxWidth,
			Message: "must be non-negative",
		})
	}
	if c.Output.MaxWidth > maxOutputWidth {
		errors = append(errors, ValidationError{
			Field:   "output.max_width",
			Value:   c.Output.MaxWidth,
			Message: fmt.Sprintf("exceeds maximum of %d", maxOutputWidth),
		})
	}

	if c.Output.Color != "" && !slices.Contains(styles.ValidColorModes(), c.Output.Color) {
		errors = append(errors, ValidationError{
			Field:   "output.color",
			Value:   c.Output.Color,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(styles.ValidColorModes(), ", ")),
		})
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}
