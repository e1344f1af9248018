package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/DeBrosOfficial/privatevote/pkg/config/validate"
)

// ValidationError represents a single validation error with context.
type ValidationError = validate.ValidationError

// Validate performs comprehensive validation of the entire config.
// It aggregates all errors and returns them, allowing the caller to print all issues at once.
func (c *Config) Validate() []error {
	var errs []error

	errs = append(errs, c.validateNetworks()...)
	errs = append(errs, c.validatePaths()...)
	errs = append(errs, c.validateDeploy()...)
	errs = append(errs, validate.ValidateLogging(validate.LoggingConfig{
		Level:  c.Logging.Level,
		Format: c.Logging.Format,
		Colors: c.Logging.Colors,
	})...)

	return errs
}

func (c *Config) validateNetworks() []error {
	var errs []error

	if len(c.Networks) == 0 {
		return append(errs, ValidationError{
			Path:    "networks",
			Message: "must define at least one network",
		})
	}

	if c.DefaultNetwork == "" {
		errs = append(errs, ValidationError{
			Path:    "default_network",
			Message: "must not be empty",
		})
	} else if _, ok := c.Networks[c.DefaultNetwork]; !ok {
		errs = append(errs, ValidationError{
			Path:    "default_network",
			Message: fmt.Sprintf("network %q is not configured", c.DefaultNetwork),
			Hint:    "known networks: " + strings.Join(c.NetworkNames(), ", "),
		})
	}

	for _, name := range c.NetworkNames() {
		nc := c.Networks[name]
		errs = append(errs, validate.ValidateNetwork(validate.NetworkConfig{
			Name:     name,
			URL:      nc.URL,
			Timeout:  nc.Timeout,
			Keystore: nc.Accounts.Keystore,
		})...)
	}

	return errs
}

func (c *Config) validatePaths() []error {
	var errs []error

	if c.Paths.Artifacts == "" {
		errs = append(errs, ValidationError{
			Path:    "paths.artifacts",
			Message: "must not be empty",
			Hint:    "point it at Hardhat's artifacts/ or Foundry's out/ directory",
		})
	}

	// A missing deployments directory is created on first write.
	if dir := c.Paths.Deployments; dir != "" {
		if _, err := os.Stat(dir); err == nil {
			if err := validate.ValidateDirWritable(dir); err != nil {
				errs = append(errs, ValidationError{
					Path:    "paths.deployments",
					Message: err.Error(),
				})
			}
		}
	}

	return errs
}

func (c *Config) validateDeploy() []error {
	var errs []error
	dc := c.Deploy

	if strings.TrimSpace(dc.Contract) == "" {
		errs = append(errs, ValidationError{
			Path:    "deploy.contract",
			Message: "must not be empty",
		})
	}

	if dc.AccountIndex < 0 {
		errs = append(errs, ValidationError{
			Path:    "deploy.account_index",
			Message: fmt.Sprintf("must be >= 0; got %d", dc.AccountIndex),
		})
	}

	if dc.Confirmations < 1 || dc.Confirmations > MaxConfirmations {
		errs = append(errs, ValidationError{
			Path:    "deploy.confirmations",
			Message: fmt.Sprintf("must be between 1 and %d; got %d", MaxConfirmations, dc.Confirmations),
			Hint:    "1 means the block that includes the transaction",
		})
	}

	if dc.ConfirmTimeout < 0 {
		errs = append(errs, ValidationError{
			Path:    "deploy.confirm_timeout",
			Message: "must not be negative",
			Hint:    "use 0 to wait indefinitely",
		})
	}

	return errs
}
