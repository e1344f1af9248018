package validate

import "time"

// NetworkConfig represents one network entry for validation purposes.
type NetworkConfig struct {
	Name     string
	URL      string
	Timeout  time.Duration
	Keystore string
}

// ValidateNetwork validates the endpoint and keystore of a network. Private
// keys are decoded when the signer is resolved, since DEPLOYER_PRIVATE_KEY
// can replace them after the file is loaded.
func ValidateNetwork(nc NetworkConfig) []error {
	var errs []error
	prefix := "networks." + nc.Name

	if err := ValidateRPCURL(nc.URL); err != nil {
		errs = append(errs, ValidationError{
			Path:    prefix + ".url",
			Message: err.Error(),
			Hint:    "expected http(s)://, ws(s):// or a path to an .ipc socket",
		})
	}

	if nc.Timeout < 0 {
		errs = append(errs, ValidationError{
			Path:    prefix + ".timeout",
			Message: "must not be negative",
		})
	}

	if nc.Keystore != "" {
		if err := ValidateFileReadable(nc.Keystore); err != nil {
			errs = append(errs, ValidationError{
				Path:    prefix + ".accounts.keystore",
				Message: err.Error(),
			})
		}
	}

	return errs
}
