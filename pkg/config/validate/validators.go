package validate

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// ValidationError represents a single validation error with context.
type ValidationError struct {
	Path    string // e.g., "networks.sepolia.url" or "networks.sepolia.accounts.keystore"
	Message string // e.g., "unsupported scheme"
	Hint    string // e.g., "expected http(s)://, ws(s):// or a path to an .ipc socket"
}

func (e ValidationError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s; %s", e.Path, e.Message, e.Hint)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidateRPCURL validates a JSON-RPC endpoint: http(s), ws(s) or an IPC
// socket path.
func ValidateRPCURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("must not be empty")
	}
	if strings.HasSuffix(raw, ".ipc") && !strings.Contains(raw, "://") {
		return nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %v", err)
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

// ValidatePrivateKey validates a hex-encoded secp256k1 private key, with or
// without the 0x prefix. The key itself never appears in the error.
func ValidatePrivateKey(key string) error {
	key = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(key), "0x"), "0X")
	if len(key) != 64 {
		return fmt.Errorf("must be 64 hex characters (32 bytes), got %d", len(key))
	}
	if _, err := ethcrypto.HexToECDSA(key); err != nil {
		return fmt.Errorf("not a valid secp256k1 private key")
	}
	return nil
}

// ValidateDirWritable validates that a directory exists and is writable.
func ValidateDirWritable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access directory: %v", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory")
	}

	// Try to write a test file
	testFile := filepath.Join(path, ".write_test")
	if err := os.WriteFile(testFile, []byte(""), 0644); err != nil {
		return fmt.Errorf("directory not writable: %v", err)
	}
	os.Remove(testFile)

	return nil
}

// ValidateFileReadable validates that a file exists and is readable.
func ValidateFileReadable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot read file: %v", err)
	}
	if info.IsDir() {
		return fmt.Errorf("is a directory")
	}
	return nil
}
