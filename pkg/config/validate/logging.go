package validate

import "fmt"

// LoggingConfig represents the logging configuration for validation purposes.
type LoggingConfig struct {
	Level  string
	Format string
	Colors string
}

// ValidateLogging performs validation of the logging configuration.
func ValidateLogging(log LoggingConfig) []error {
	var errs []error

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[log.Level] {
		errs = append(errs, ValidationError{
			Path:    "logging.level",
			Message: fmt.Sprintf("invalid value %q", log.Level),
			Hint:    "allowed values: debug, info, warn, error",
		})
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[log.Format] {
		errs = append(errs, ValidationError{
			Path:    "logging.format",
			Message: fmt.Sprintf("invalid value %q", log.Format),
			Hint:    "allowed values: json, console",
		})
	}

	validColors := map[string]bool{"": true, "auto": true, "always": true, "never": true}
	if !validColors[log.Colors] {
		errs = append(errs, ValidationError{
			Path:    "logging.colors",
			Message: fmt.Sprintf("invalid value %q", log.Colors),
			Hint:    "allowed values: auto, always, never",
		})
	}

	return errs
}
