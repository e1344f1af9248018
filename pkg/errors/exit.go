package errors

import (
	"errors"
	"fmt"
	"io"
)

// Exit statuses returned by the command line entry point.
const (
	ExitOK      = 0
	ExitFailure = 1
)

// ExitCode maps an error to a process exit status. Every failure kind is
// fatal to the run and exits with the same non-zero status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	return ExitFailure
}

// Kind returns a short human-readable label for the failure kind.
func Kind(err error) string {
	code := GetErrorCode(err)
	switch code {
	case CodeOK:
		return ""
	case CodeCancelled, CodeDeadlineExceeded:
		return "interrupted"
	}

	switch GetCategory(code) {
	case CategoryEnvironment:
		return "environment error"
	case CategoryArtifact:
		return "artifact error"
	case CategoryNetwork:
		return "network error"
	case CategoryValidation:
		return "invalid configuration"
	default:
		return "deployment failed"
	}
}

// StackTrace returns the stack captured closest to where the failure
// originated, or "" when no error in the chain carries one.
func StackTrace(err error) string {
	var trace string
	for err != nil {
		if st, ok := err.(interface{ StackTrace() string }); ok {
			if s := st.StackTrace(); s != "" {
				trace = s
			}
		}
		err = errors.Unwrap(err)
	}
	return trace
}

// Report writes a full diagnostic for err to w: the kind, the message chain,
// the pending transaction hash if any, and the captured stack.
func Report(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "❌ %s: %v\n", Kind(err), err)
	if hash := PendingTxHash(err); hash != "" {
		fmt.Fprintf(w, "   transaction %s may still be pending on-chain\n", hash)
	}
	if trace := StackTrace(err); trace != "" {
		fmt.Fprintf(w, "\n%s", trace)
	}
}
