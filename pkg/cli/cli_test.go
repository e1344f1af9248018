package cli

import (
	"bytes"
	"context"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core"
	"github.com/ethereum/go-ethereum/core/types"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeBrosOfficial/privatevote/pkg/chain"
	"github.com/DeBrosOfficial/privatevote/pkg/config"
	"github.com/DeBrosOfficial/privatevote/pkg/deployer"
)

// Hardhat development account #0.
const (
	testKey  = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testAddr = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

const privateVoteArtifact = `{"_format":"hh-sol-artifact-1","contractName":"PrivateVote","sourceName":"contracts/PrivateVote.sol",` +
	`"abi":[{"inputs":[],"stateMutability":"nonpayable","type":"constructor"}],` +
	`"bytecode":"0x600060005360016000f3","deployedBytecode":"0x00","linkReferences":{},"deployedLinkReferences":{}}`

type minedBackend struct {
	simulated.Client
	sim *simulated.Backend
}

func (b *minedBackend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	if err := b.Client.SendTransaction(ctx, tx); err != nil {
		return err
	}
	b.sim.Commit()
	return nil
}

func newBackend(t *testing.T) *minedBackend {
	t.Helper()
	funds, _ := new(big.Int).SetString("1000000000000000000000", 10)
	sim := simulated.NewBackend(core.GenesisAlloc{
		common.HexToAddress(testAddr): {Balance: funds},
	})
	t.Cleanup(func() { _ = sim.Close() })
	return &minedBackend{Client: sim.Client(), sim: sim}
}

type fixture struct {
	dir       string
	config    string
	artifacts string
}

func newFixture(t *testing.T, extra string) fixture {
	t.Helper()
	dir := t.TempDir()
	artifacts := filepath.Join(dir, "artifacts")
	require.NoError(t, os.MkdirAll(filepath.Join(artifacts, "contracts", "PrivateVote.sol"), 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(artifacts, "contracts", "PrivateVote.sol", "PrivateVote.json"),
		[]byte(privateVoteArtifact), 0644))

	cfg := "default_network: localhost\n" +
		"networks:\n" +
		"  localhost:\n" +
		"    url: http://127.0.0.1:8545\n" +
		"    chain_id: 1337\n" +
		"    accounts:\n" +
		"      private_keys: [\"${DEPLOYER_KEY}\"]\n" +
		"paths:\n" +
		"  artifacts: " + artifacts + "\n" +
		"logging:\n" +
		"  colors: never\n" + extra
	path := filepath.Join(dir, "deploy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0644))

	return fixture{dir: dir, config: path, artifacts: artifacts}
}

func mapEnv(vars map[string]string) config.Env {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func run(t *testing.T, env map[string]string, opts []deployer.Option, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	a := &app{
		info:         BuildInfo{Version: "1.2.3", Commit: "abc123"},
		stdout:       &stdout,
		stderr:       &stderr,
		env:          mapEnv(env),
		deployerOpts: opts,
	}
	code := a.execute(context.Background(), args)
	return code, stdout.String(), stderr.String()
}

func TestDeploySuccess(t *testing.T) {
	f := newFixture(t, "")
	backend := newBackend(t)

	code, stdout, stderr := run(t,
		map[string]string{"DEPLOYER_KEY": testKey},
		[]deployer.Option{deployer.WithBackend(backend)},
		"--config", f.config)

	require.Equal(t, 0, code, stderr)
	want := ethcrypto.CreateAddress(common.HexToAddress(testAddr), 0)
	assert.Equal(t, "✅ PrivateVote deployed to: "+want.Hex()+"\n", stdout)
	assert.Contains(t, stderr, "Deploying with account")
	assert.Contains(t, stderr, testAddr)
}

func TestDeploySubcommandWritesRecord(t *testing.T) {
	f := newFixture(t, "")
	records := filepath.Join(f.dir, "deployments")
	backend := newBackend(t)

	code, stdout, stderr := run(t,
		map[string]string{"DEPLOYER_KEY": testKey},
		[]deployer.Option{deployer.WithBackend(backend)},
		"deploy", "--config", f.config, "--log-level", "debug")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "PrivateVote deployed to: 0x")
	_, err := os.Stat(filepath.Join(records, "localhost", "PrivateVote.yaml"))
	assert.True(t, os.IsNotExist(err), "no record without paths.deployments")

	f = newFixture(t, "")
	cfg, err := os.ReadFile(f.config)
	require.NoError(t, err)
	records = filepath.Join(f.dir, "deployments")
	cfg = bytes.Replace(cfg, []byte("paths:\n"), []byte("paths:\n  deployments: "+records+"\n"), 1)
	require.NoError(t, os.WriteFile(f.config, cfg, 0644))

	code, _, stderr = run(t,
		map[string]string{"DEPLOYER_KEY": testKey},
		[]deployer.Option{deployer.WithBackend(newBackend(t))},
		"deploy", "--config", f.config)
	require.Equal(t, 0, code, stderr)
	rec, err := deployer.ReadRecord(filepath.Join(records, "localhost", "PrivateVote.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "PrivateVote", rec.Contract)
}

func TestDeployWithoutSigner(t *testing.T) {
	f := newFixture(t, "")
	dials := 0
	dial := deployer.WithDialer(func(ctx context.Context, nc config.NetworkConfig) (*chain.Client, error) {
		dials++
		return nil, assert.AnError
	})

	code, stdout, stderr := run(t, map[string]string{}, []deployer.Option{dial}, "--config", f.config)
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "❌ environment error")
	assert.Equal(t, 0, dials)
}

func TestDeployBadPrivateKeyFromEnv(t *testing.T) {
	f := newFixture(t, "")
	dials := 0
	dial := deployer.WithDialer(func(ctx context.Context, nc config.NetworkConfig) (*chain.Client, error) {
		dials++
		return nil, assert.AnError
	})

	code, stdout, stderr := run(t,
		map[string]string{config.EnvPrivateKey: "0x1234"},
		[]deployer.Option{dial},
		"--config", f.config)
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.NotContains(t, stderr, "Configuration errors")
	assert.Contains(t, stderr, "❌ environment error")
	assert.Contains(t, stderr, "private_keys[0] is not a valid private key")
	assert.Equal(t, 0, dials)
}

func TestDeployMissingArtifact(t *testing.T) {
	f := newFixture(t, "")
	dials := 0
	dial := deployer.WithDialer(func(ctx context.Context, nc config.NetworkConfig) (*chain.Client, error) {
		dials++
		return nil, assert.AnError
	})

	code, stdout, stderr := run(t,
		map[string]string{"DEPLOYER_KEY": testKey},
		[]deployer.Option{dial},
		"--config", f.config, "--contract", "Ballot")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "❌ artifact error")
	assert.Contains(t, stderr, `artifact "Ballot" not found`)
	assert.Equal(t, 0, dials)
}

func TestDeployArtifactsFlag(t *testing.T) {
	f := newFixture(t, "")

	code, stdout, stderr := run(t,
		map[string]string{"DEPLOYER_KEY": testKey},
		[]deployer.Option{deployer.WithBackend(newBackend(t))},
		"--config", f.config, "--artifacts", filepath.Join(f.dir, "nowhere"))
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "artifact error")
}

func TestDeployInvalidConfig(t *testing.T) {
	f := newFixture(t, "deploy:\n  confirmations: 0\n")

	code, stdout, stderr := run(t, map[string]string{"DEPLOYER_KEY": testKey}, nil, "--config", f.config)
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Configuration errors (1)")
	assert.Contains(t, stderr, "deploy.confirmations")
	assert.Contains(t, stderr, "❌ invalid configuration")
}

func TestUnknownNetworkFlag(t *testing.T) {
	f := newFixture(t, "")

	code, _, stderr := run(t, map[string]string{"DEPLOYER_KEY": testKey}, nil,
		"--config", f.config, "--network", "sepolia")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, `network "sepolia" is not configured`)
}

func TestUnknownFlag(t *testing.T) {
	code, stdout, stderr := run(t, nil, nil, "--bogus")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "invalid configuration")
}

func TestAccounts(t *testing.T) {
	f := newFixture(t, "")

	code, stdout, stderr := run(t, map[string]string{"DEPLOYER_KEY": testKey}, nil, "accounts", "--config", f.config)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "INDEX")
	assert.Contains(t, stdout, testAddr)
	assert.Contains(t, stdout, "private_keys[0] (deployer)")
}

func TestAccountsNoneConfigured(t *testing.T) {
	f := newFixture(t, "")

	code, stdout, stderr := run(t, map[string]string{}, nil, "accounts", "--config", f.config)
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "no accounts configured")
}

func TestVersion(t *testing.T) {
	code, stdout, _ := run(t, nil, nil, "version")
	assert.Equal(t, 0, code)
	assert.Equal(t, "privatevote-deploy 1.2.3 (commit abc123)\n", stdout)
}
