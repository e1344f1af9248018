package chain

import (
	"context"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/core"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeBrosOfficial/privatevote/pkg/config"
	"github.com/DeBrosOfficial/privatevote/pkg/errors"
)

func newSim(t *testing.T) *simulated.Backend {
	t.Helper()
	sim := simulated.NewBackend(core.GenesisAlloc{})
	t.Cleanup(func() { _ = sim.Close() })
	return sim
}

func TestConnectSimulated(t *testing.T) {
	sim := newSim(t)

	c, err := Connect(context.Background(), sim.Client(), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1337), c.ChainIDValue().Int64())

	c, err = Connect(context.Background(), sim.Client(), 1337)
	require.NoError(t, err)
	c.Close()
}

func TestConnectChainIDMismatch(t *testing.T) {
	sim := newSim(t)

	_, err := Connect(context.Background(), sim.Client(), 11155111)
	require.Error(t, err)
	assert.True(t, errors.IsNetwork(err))
	assert.Contains(t, err.Error(), "configured chain id 11155111 but the node reports 1337")
}

func TestExpectChainID(t *testing.T) {
	assert.NoError(t, ExpectChainID(big.NewInt(5), 0))
	assert.NoError(t, ExpectChainID(big.NewInt(5), 5))
	assert.Error(t, ExpectChainID(big.NewInt(5), 6))
	assert.Error(t, ExpectChainID(new(big.Int).Lsh(big.NewInt(1), 70), 6))
}

func TestDialUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := Dial(context.Background(), config.NetworkConfig{URL: srv.URL, Timeout: 5 * time.Second})
	require.Error(t, err)
	assert.True(t, errors.IsNetwork(err))
}

func TestDialBadURL(t *testing.T) {
	_, err := Dial(context.Background(), config.NetworkConfig{URL: "ftp://nowhere"})
	require.Error(t, err)
	assert.True(t, errors.IsNetwork(err))
}

func TestWaitTimeout(t *testing.T) {
	ctx, cancel := WaitTimeout(context.Background(), 0)
	defer cancel()
	_, ok := ctx.Deadline()
	assert.False(t, ok)

	ctx2, cancel2 := WaitTimeout(context.Background(), time.Minute)
	defer cancel2()
	_, ok = ctx2.Deadline()
	assert.True(t, ok)
}
