package errors

import (
	"context"
	"errors"
)

// IsEnvironment checks if an error indicates no usable signer.
func IsEnvironment(err error) bool {
	if err == nil {
		return false
	}

	var envErr *EnvironmentError
	return errors.As(err, &envErr) || errors.Is(err, ErrNoSigner)
}

// IsArtifactNotFound checks if an error indicates a missing or undeployable artifact.
func IsArtifactNotFound(err error) bool {
	if err == nil {
		return false
	}

	var artifactErr *ArtifactNotFoundError
	return errors.As(err, &artifactErr) || errors.Is(err, ErrArtifactNotFound)
}

// IsNetwork checks if an error came from talking to the chain.
func IsNetwork(err error) bool {
	if err == nil {
		return false
	}

	var networkErr *NetworkError
	return errors.As(err, &networkErr)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	if err == nil {
		return false
	}

	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// PendingTxHash returns the hash of a transaction that was broadcast but not
// confirmed, if err carries one.
func PendingTxHash(err error) string {
	var networkErr *NetworkError
	if errors.As(err, &networkErr) {
		return networkErr.TxHash
	}
	return ""
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) string {
	if err == nil {
		return CodeOK
	}

	// Typed errors are checked before the generic interface so that a code
	// copied by Wrap never hides the original kind.
	switch {
	case IsEnvironment(err):
		return CodeEnvironment
	case IsArtifactNotFound(err):
		return CodeArtifactNotFound
	case IsNetwork(err):
		return CodeNetwork
	case IsValidation(err):
		return CodeValidation
	}

	switch {
	case errors.Is(err, context.Canceled):
		return CodeCancelled
	case errors.Is(err, context.DeadlineExceeded):
		return CodeDeadlineExceeded
	}

	var customErr Error
	if errors.As(err, &customErr) {
		return customErr.Code()
	}
	return CodeInternal
}

// Cause returns the underlying cause of an error.
// It unwraps the error chain until it finds the root cause.
func Cause(err error) error {
	for {
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return err
		}
		underlying := unwrapper.Unwrap()
		if underlying == nil {
			return err
		}
		err = underlying
	}
}
