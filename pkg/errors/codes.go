package errors

// Error codes for categorizing errors.
const (
	// CodeOK indicates success (not an error).
	CodeOK = "OK"

	// CodeCancelled indicates the operation was cancelled.
	CodeCancelled = "CANCELLED"

	// CodeInvalidArgument indicates the caller specified an invalid argument.
	CodeInvalidArgument = "INVALID_ARGUMENT"

	// CodeDeadlineExceeded indicates operation deadline was exceeded.
	CodeDeadlineExceeded = "DEADLINE_EXCEEDED"

	// CodeInternal indicates internal errors.
	CodeInternal = "INTERNAL"

	// Domain-specific error codes

	// CodeValidation indicates input validation failed.
	CodeValidation = "VALIDATION_ERROR"

	// CodeConfigError indicates a configuration error.
	CodeConfigError = "CONFIG_ERROR"

	// CodeEnvironment indicates no usable signer or account was available.
	CodeEnvironment = "ENVIRONMENT"

	// CodeArtifactNotFound indicates a contract artifact is missing or not deployable.
	CodeArtifactNotFound = "ARTIFACT_NOT_FOUND"

	// CodeNetwork indicates dialing, submission or confirmation failed.
	CodeNetwork = "NETWORK"
)

// ErrorCategory represents a high-level error category.
type ErrorCategory string

const (
	// CategoryEnvironment covers signer and account problems.
	CategoryEnvironment ErrorCategory = "ENVIRONMENT_ERROR"

	// CategoryArtifact covers missing or undeployable artifacts.
	CategoryArtifact ErrorCategory = "ARTIFACT_ERROR"

	// CategoryNetwork indicates a network-related error.
	CategoryNetwork ErrorCategory = "NETWORK_ERROR"

	// CategoryValidation indicates a validation or configuration error.
	CategoryValidation ErrorCategory = "VALIDATION_ERROR"

	// CategoryInternal is everything else.
	CategoryInternal ErrorCategory = "INTERNAL_ERROR"
)

// GetCategory returns the category for an error code.
func GetCategory(code string) ErrorCategory {
	switch code {
	case CodeEnvironment:
		return CategoryEnvironment

	case CodeArtifactNotFound:
		return CategoryArtifact

	case CodeNetwork, CodeDeadlineExceeded, CodeCancelled:
		return CategoryNetwork

	case CodeValidation, CodeInvalidArgument, CodeConfigError:
		return CategoryValidation

	default:
		return CategoryInternal
	}
}
