// Package chain connects to an Ethereum JSON-RPC endpoint.
package chain

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/DeBrosOfficial/privatevote/pkg/config"
	"github.com/DeBrosOfficial/privatevote/pkg/errors"
)

// Backend is what a deployment needs from a node: building, sending and
// waiting for transactions. *ethclient.Client satisfies it, and so does the
// go-ethereum simulated client.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
}

var _ Backend = (*ethclient.Client)(nil)

// Client is a connected backend together with the chain it reported.
type Client struct {
	Backend
	chainID *big.Int
	closer  func()
}

// ChainIDValue returns the chain ID read when the client was created.
func (c *Client) ChainIDValue() *big.Int {
	return new(big.Int).Set(c.chainID)
}

// Close releases the underlying connection, if any.
func (c *Client) Close() {
	if c.closer != nil {
		c.closer()
	}
}

// Connect wraps an existing backend, reading and checking its chain ID.
// expected == 0 accepts any chain.
func Connect(ctx context.Context, backend Backend, expected uint64) (*Client, error) {
	id, err := backend.ChainID(ctx)
	if err != nil {
		return nil, errors.NewNetworkError("chain_id", "failed to read chain id", err)
	}
	if err := ExpectChainID(id, expected); err != nil {
		return nil, err
	}
	return &Client{Backend: backend, chainID: id}, nil
}

// Dial connects to the network's endpoint and reads its chain ID. The dial
// is bounded by the network timeout when one is set.
func Dial(ctx context.Context, nc config.NetworkConfig) (*Client, error) {
	dialCtx := ctx
	if nc.Timeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, nc.Timeout)
		defer cancel()
	}

	ec, err := ethclient.DialContext(dialCtx, nc.URL)
	if err != nil {
		return nil, errors.NewNetworkError("dial", fmt.Sprintf("failed to dial %s", nc.URL), err)
	}

	c, err := Connect(dialCtx, ec, nc.ChainID)
	if err != nil {
		ec.Close()
		return nil, err
	}
	c.closer = ec.Close
	return c, nil
}

// ExpectChainID fails when a chain is pinned and the node reports another.
func ExpectChainID(got *big.Int, expected uint64) error {
	if expected == 0 || got == nil {
		return nil
	}
	if !got.IsUint64() || got.Uint64() != expected {
		return errors.NewNetworkError("chain_id",
			fmt.Sprintf("configured chain id %d but the node reports %s", expected, got), nil)
	}
	return nil
}

// WaitTimeout derives a context for the confirmation wait; 0 means no limit.
func WaitTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
