package deployer

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/DeBrosOfficial/privatevote/pkg/artifact"
	"github.com/DeBrosOfficial/privatevote/pkg/chain"
	"github.com/DeBrosOfficial/privatevote/pkg/errors"
	"github.com/DeBrosOfficial/privatevote/pkg/signer"
)

// DefaultPollInterval is how often the chain head is polled while waiting
// for extra confirmations.
const DefaultPollInterval = time.Second

// ContractFactory builds creation transactions for one artifact, signed by
// one account, on one chain.
type ContractFactory struct {
	artifact *artifact.Artifact
	signer   *signer.Signer
	backend  chain.Backend
	chainID  *big.Int
	gasLimit uint64
}

// NewContractFactory binds an artifact and a signer to a connected chain.
func NewContractFactory(a *artifact.Artifact, s *signer.Signer, c *chain.Client) *ContractFactory {
	return &ContractFactory{
		artifact: a,
		signer:   s,
		backend:  c,
		chainID:  c.ChainIDValue(),
	}
}

// WithGasLimit fixes the gas limit; 0 lets the node estimate it.
func (f *ContractFactory) WithGasLimit(gas uint64) *ContractFactory {
	f.gasLimit = gas
	return f
}

// Artifact returns the artifact the factory deploys.
func (f *ContractFactory) Artifact() *artifact.Artifact {
	return f.artifact
}

// Deploy signs and broadcasts the creation transaction. It returns once the
// node has accepted the transaction; the instance is not usable until Wait
// succeeds.
func (f *ContractFactory) Deploy(ctx context.Context, args ...interface{}) (*PendingDeployment, error) {
	opts, err := f.signer.TransactOpts(ctx, f.chainID)
	if err != nil {
		return nil, errors.NewNetworkError("submit", "failed to prepare deployment transaction", err)
	}
	opts.GasLimit = f.gasLimit

	addr, tx, _, err := bind.DeployContract(opts, f.artifact.ABI, f.artifact.Bytecode, f.backend, args...)
	if err != nil {
		return nil, errors.NewNetworkError("submit", "failed to submit deployment transaction", err)
	}

	return &PendingDeployment{
		Address:      addr,
		Tx:           tx,
		From:         opts.From,
		backend:      f.backend,
		pollInterval: DefaultPollInterval,
	}, nil
}

// PendingDeployment is a broadcast creation transaction that has not been
// confirmed yet.
type PendingDeployment struct {
	// Address is where the instance will live if the transaction succeeds.
	Address common.Address
	Tx      *types.Transaction
	From    common.Address

	backend      chain.Backend
	pollInterval time.Duration
}

// DeployedInstance is a confirmed contract instance.
type DeployedInstance struct {
	Address     common.Address
	TxHash      common.Hash
	BlockNumber uint64
	GasUsed     uint64
	Deployer    common.Address
}

// Wait blocks until the creation transaction is mined and the contract code
// is present, then until the including block is confirmations deep (1 means
// the including block itself). If ctx ends first, the transaction may still
// be mined later; the returned error carries its hash.
func (p *PendingDeployment) Wait(ctx context.Context, confirmations uint64) (*DeployedInstance, error) {
	hash := p.Tx.Hash().Hex()

	receipt, err := bind.WaitMined(ctx, p.backend, p.Tx)
	if err != nil {
		return nil, errors.NewNetworkError("confirm", "waiting for deployment", err).WithTxHash(hash)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, errors.NewNetworkError("confirm",
			"deployment transaction reverted", nil).WithTxHash(hash)
	}
	if receipt.ContractAddress == (common.Address{}) {
		return nil, errors.NewNetworkError("confirm", "receipt has no contract address", nil).WithTxHash(hash)
	}

	code, err := p.backend.CodeAt(ctx, receipt.ContractAddress, nil)
	if err != nil {
		return nil, errors.NewNetworkError("confirm", "failed to read deployed code", err).WithTxHash(hash)
	}
	if len(code) == 0 {
		return nil, errors.NewNetworkError("confirm", "no code at deployed address",
			bind.ErrNoCodeAfterDeploy).WithTxHash(hash)
	}

	if confirmations > 1 {
		block := receipt.BlockNumber.Uint64()
		if confirmations-1 > math.MaxUint64-block {
			return nil, errors.NewNetworkError("confirm",
				fmt.Sprintf("%d confirmations after block %d is out of range", confirmations, block), nil).WithTxHash(hash)
		}
		target := block + confirmations - 1
		if err := p.waitForBlock(ctx, target); err != nil {
			return nil, errors.NewNetworkError("confirm", "waiting for confirmations", err).WithTxHash(hash)
		}
	}

	return &DeployedInstance{
		Address:     receipt.ContractAddress,
		TxHash:      p.Tx.Hash(),
		BlockNumber: receipt.BlockNumber.Uint64(),
		GasUsed:     receipt.GasUsed,
		Deployer:    p.From,
	}, nil
}

func (p *PendingDeployment) waitForBlock(ctx context.Context, target uint64) error {
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		head, err := p.backend.BlockNumber(ctx)
		if err == nil && head >= target {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
