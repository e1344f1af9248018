package errors_test

import (
	"context"
	"fmt"

	"github.com/DeBrosOfficial/privatevote/pkg/errors"
)

// Example demonstrates the error returned when no signer is configured.
func ExampleNewEnvironmentError() {
	err := errors.NewEnvironmentError("sepolia", "no accounts configured", nil)
	fmt.Println(err.Error())
	fmt.Println("Code:", err.Code())
	fmt.Println("Exit:", errors.ExitCode(err))
	// Output:
	// network "sepolia": no accounts configured
	// Code: ENVIRONMENT
	// Exit: 1
}

// Example demonstrates wrapping errors with context.
func ExampleWrap() {
	originalErr := errors.NewArtifactNotFoundError("PrivateVote", "")
	wrappedErr := errors.Wrap(originalErr, "resolving contract factory")

	fmt.Println(wrappedErr.Error())
	fmt.Println("Is ArtifactNotFound:", errors.IsArtifactNotFound(wrappedErr))
	// Output:
	// resolving contract factory: artifact "PrivateVote" not found
	// Is ArtifactNotFound: true
}

// Example demonstrates a confirmation failure that leaves a transaction outstanding.
func ExampleNetworkError_WithTxHash() {
	err := errors.NewNetworkError("confirm", "waiting for deployment", context.Canceled).
		WithTxHash("0x5c504ed432cb51138bcf09aa5e8a410dd4a1e204ef84bfed1be16dfba1b22060")

	fmt.Println(errors.Kind(err))
	fmt.Println(errors.PendingTxHash(err))
	// Output:
	// network error
	// 0x5c504ed432cb51138bcf09aa5e8a410dd4a1e204ef84bfed1be16dfba1b22060
}

// Example demonstrates mapping codes to categories.
func ExampleGetCategory() {
	fmt.Println(errors.GetCategory(errors.CodeEnvironment))
	fmt.Println(errors.GetCategory(errors.CodeNetwork))
	fmt.Println(errors.GetCategory(errors.CodeInternal))
	// Output:
	// ENVIRONMENT_ERROR
	// NETWORK_ERROR
	// INTERNAL_ERROR
}
