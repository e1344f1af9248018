//go:build e2e

package e2e

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/DeBrosOfficial/privatevote/pkg/chain"
	"github.com/DeBrosOfficial/privatevote/pkg/config"
)

// Hardhat and anvil both fund this account on their development chains.
const devPrivateKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

// GetRPCURL returns the node the tests deploy to.
func GetRPCURL() string {
	if v := os.Getenv("E2E_RPC_URL"); v != "" {
		return v
	}
	return "http://127.0.0.1:8545"
}

// GetArtifactsDir returns the compiled artifacts the tests deploy from.
func GetArtifactsDir() string {
	return os.Getenv("E2E_ARTIFACTS_DIR")
}

// GetPrivateKey returns the funded account used to deploy.
func GetPrivateKey() string {
	if v := os.Getenv("E2E_PRIVATE_KEY"); v != "" {
		return v
	}
	return devPrivateKey
}

// SkipIfMissingNode skips unless a node answers at GetRPCURL and artifacts
// are available.
func SkipIfMissingNode(t *testing.T) {
	t.Helper()
	if GetArtifactsDir() == "" {
		t.Skip("E2E_ARTIFACTS_DIR not set; deploy tests skipped")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, err := chain.Dial(ctx, config.NetworkConfig{URL: GetRPCURL(), Timeout: 5 * time.Second})
	if err != nil {
		t.Skipf("node not reachable at %s: %v", GetRPCURL(), err)
	}
	c.Close()
}
