package errors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestIsEnvironment(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"EnvironmentError", NewEnvironmentError("localhost", "", nil), true},
		{"sentinel ErrNoSigner", ErrNoSigner, true},
		{"wrapped EnvironmentError", Wrap(NewEnvironmentError("localhost", "", nil), "context"), true},
		{"fmt wrapped sentinel", fmt.Errorf("resolve: %w", ErrNoSigner), true},
		{"other error", NewNetworkError("dial", "", nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsEnvironment(tt.err); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestIsArtifactNotFound(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"ArtifactNotFoundError", NewArtifactNotFoundError("PrivateVote", ""), true},
		{"sentinel", ErrArtifactNotFound, true},
		{"wrapped", Wrap(NewArtifactNotFoundError("PrivateVote", ""), "factory"), true},
		{"other error", NewEnvironmentError("", "", nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsArtifactNotFound(tt.err); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestIsNetwork(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"NetworkError", NewNetworkError("submit", "", nil), true},
		{"wrapped", fmt.Errorf("deploy: %w", NewNetworkError("confirm", "", nil)), true},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNetwork(tt.err); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil", nil, CodeOK},
		{"environment", NewEnvironmentError("", "", nil), CodeEnvironment},
		{"artifact", NewArtifactNotFoundError("X", ""), CodeArtifactNotFound},
		{"network", NewNetworkError("dial", "", nil), CodeNetwork},
		{"validation", NewValidationError("f", "m", nil), CodeValidation},
		{"wrapped network", Wrap(NewNetworkError("dial", "", nil), "ctx"), CodeNetwork},
		{"canceled", fmt.Errorf("run: %w", context.Canceled), CodeCancelled},
		{"deadline", context.DeadlineExceeded, CodeDeadlineExceeded},
		{"plain", errors.New("boom"), CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetErrorCode(tt.err); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil", nil, ""},
		{"environment", NewEnvironmentError("sepolia", "no accounts", nil), "environment error"},
		{"no signer sentinel", fmt.Errorf("resolve: %w", ErrNoSigner), "environment error"},
		{"artifact", NewArtifactNotFoundError("PrivateVote", ""), "artifact error"},
		{"network", NewNetworkError("confirm", "reverted", nil), "network error"},
		{"validation", NewValidationError("deploy.confirmations", "must be positive", nil), "invalid configuration"},
		{"config code", &BaseError{code: CodeConfigError, message: "bad file"}, "invalid configuration"},
		{"cancelled", Wrap(context.Canceled, "deploy"), "interrupted"},
		{"deadline", context.DeadlineExceeded, "interrupted"},
		{"internal", NewInternalError("deployer has already run", nil).WithOperation("run"), "deployment failed"},
		{"plain", errors.New("boom"), "deployment failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Kind(tt.err); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestCause(t *testing.T) {
	root := errors.New("root")
	err := Wrap(Wrap(root, "a"), "b")
	if Cause(err) != root {
		t.Errorf("Expected root cause")
	}
	if Cause(root) != root {
		t.Errorf("Expected Cause of a plain error to be itself")
	}
}

func TestPendingTxHash(t *testing.T) {
	if PendingTxHash(nil) != "" {
		t.Errorf("Expected no hash for nil")
	}
	err := fmt.Errorf("run: %w", NewNetworkError("confirm", "", nil).WithTxHash("0xfeed"))
	if got := PendingTxHash(err); got != "0xfeed" {
		t.Errorf("Expected 0xfeed, got %q", got)
	}
}

func TestExitCode(t *testing.T) {
	if ExitCode(nil) != ExitOK {
		t.Errorf("Expected exit 0 for nil")
	}
	for _, err := range []error{
		NewEnvironmentError("", "", nil),
		NewArtifactNotFoundError("PrivateVote", ""),
		NewNetworkError("submit", "", nil),
		context.Canceled,
		errors.New("anything"),
	} {
		if ExitCode(err) != ExitFailure {
			t.Errorf("Expected exit 1 for %v", err)
		}
	}
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	err := NewNetworkError("confirm", "waiting for deployment", context.DeadlineExceeded).WithTxHash("0x01")
	Report(&buf, err)

	out := buf.String()
	if !strings.HasPrefix(out, "❌ network error: waiting for deployment (tx 0x01)") {
		t.Errorf("Unexpected report header: %q", out)
	}
	if !strings.Contains(out, "0x01 may still be pending") {
		t.Errorf("Expected pending transaction notice: %q", out)
	}
	if !strings.Contains(out, "TestReport") {
		t.Errorf("Expected stack trace in report: %q", out)
	}

	buf.Reset()
	Report(&buf, nil)
	if buf.Len() != 0 {
		t.Errorf("Expected no output for nil error")
	}
}
