// Package deployer runs a one-shot contract deployment: resolve a signer,
// bind the artifact to a contract factory, submit the creation transaction
// and wait for it to be confirmed.
package deployer

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DeBrosOfficial/privatevote/pkg/artifact"
	"github.com/DeBrosOfficial/privatevote/pkg/chain"
	"github.com/DeBrosOfficial/privatevote/pkg/config"
	"github.com/DeBrosOfficial/privatevote/pkg/errors"
	"github.com/DeBrosOfficial/privatevote/pkg/logging"
	"github.com/DeBrosOfficial/privatevote/pkg/signer"
)

// ArtifactSource finds artifacts by name.
type ArtifactSource interface {
	Lookup(name string) (*artifact.Artifact, error)
}

// DialFunc connects to a network.
type DialFunc func(ctx context.Context, nc config.NetworkConfig) (*chain.Client, error)

// StateHook observes state transitions.
type StateHook func(from, to State)

// Deployment is the result of a successful run.
type Deployment struct {
	DeployedInstance

	Contract   string
	Network    string
	ChainID    *big.Int
	RunID      string
	DeployedAt time.Time
	// RecordPath is where the record was written; empty if none was.
	RecordPath string
}

// Deployer deploys one contract per Run. It is not safe to call Run
// concurrently; each call creates a new on-chain instance.
type Deployer struct {
	cfg       *config.Config
	network   string
	netCfg    config.NetworkConfig
	logger    *logging.ColoredLogger
	artifacts ArtifactSource
	dial      DialFunc
	prompt    signer.PassphraseFunc
	hook      StateHook
	now       func() time.Time
	poll      time.Duration

	mu    sync.Mutex
	state State
}

// Option configures a Deployer.
type Option func(*Deployer)

// WithLogger sets the logger; the default discards output.
func WithLogger(l *logging.ColoredLogger) Option {
	return func(d *Deployer) { d.logger = l }
}

// WithArtifacts replaces the artifact directory from the config.
func WithArtifacts(src ArtifactSource) Option {
	return func(d *Deployer) { d.artifacts = src }
}

// WithDialer replaces how the network is reached.
func WithDialer(dial DialFunc) Option {
	return func(d *Deployer) { d.dial = dial }
}

// WithBackend uses an already connected backend instead of dialing.
func WithBackend(b chain.Backend) Option {
	return WithDialer(func(ctx context.Context, nc config.NetworkConfig) (*chain.Client, error) {
		return chain.Connect(ctx, b, nc.ChainID)
	})
}

// WithPassphrasePrompt sets the keystore passphrase fallback; nil disables it.
func WithPassphrasePrompt(p signer.PassphraseFunc) Option {
	return func(d *Deployer) { d.prompt = p }
}

// WithStateHook observes every state transition.
func WithStateHook(h StateHook) Option {
	return func(d *Deployer) { d.hook = h }
}

// WithClock overrides the deployment timestamp source.
func WithClock(now func() time.Time) Option {
	return func(d *Deployer) { d.now = now }
}

// WithPollInterval sets how often the head is polled for extra confirmations.
func WithPollInterval(interval time.Duration) Option {
	return func(d *Deployer) { d.poll = interval }
}

// New creates a deployer for the config's selected network.
func New(cfg *config.Config, opts ...Option) (*Deployer, error) {
	name, nc, err := cfg.Network("")
	if err != nil {
		return nil, errors.NewValidationError("network", err.Error(), name)
	}

	d := &Deployer{
		cfg:     cfg,
		network: name,
		netCfg:  nc,
		logger:  logging.NewNopLogger(),
		dial:    chain.Dial,
		prompt:  signer.TerminalPrompt,
		now:     time.Now,
		poll:    DefaultPollInterval,
		state:   StateStart,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.artifacts == nil {
		d.artifacts = artifact.OpenDir(cfg.Paths.Artifacts)
	}
	return d, nil
}

// Network returns the name of the network the deployer targets.
func (d *Deployer) Network() string {
	return d.network
}

// State returns the current state of the run.
func (d *Deployer) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *Deployer) transition(to State) {
	d.mu.Lock()
	from := d.state
	if !canTransition(from, to) {
		d.mu.Unlock()
		panic(fmt.Sprintf("deployer: invalid transition %s -> %s", from, to))
	}
	d.state = to
	d.mu.Unlock()

	d.logger.ComponentDebug(logging.ComponentDeployer, "State transition",
		zap.Stringer("from", from), zap.Stringer("to", to))
	if d.hook != nil {
		d.hook(from, to)
	}
}

func (d *Deployer) fail(err error) error {
	d.transition(StateFailed)
	return err
}

// Run performs one deployment. Every failure is returned unhandled: an
// EnvironmentError when no signer is usable, an ArtifactNotFoundError when
// the contract was not built, or a NetworkError from dialing, submission or
// confirmation. Nothing is retried and nothing is sent before the artifact
// has been found.
func (d *Deployer) Run(ctx context.Context) (*Deployment, error) {
	if d.State() != StateStart {
		return nil, errors.NewInternalError("deployer has already run", nil).WithOperation("run")
	}

	runID := uuid.NewString()
	contract := d.cfg.Deploy.Contract
	log := d.logger.With(zap.String("run_id", runID), zap.String("network", d.network))

	// Signer
	signers, err := signer.Resolve(d.netCfg.Accounts,
		signer.WithNetwork(d.network),
		signer.WithEnv(d.cfg.LookupEnv),
		signer.WithPrompt(d.prompt),
	)
	if err != nil {
		return nil, d.fail(err)
	}
	acct, err := signer.Select(signers, d.cfg.Deploy.AccountIndex, d.network)
	if err != nil {
		return nil, d.fail(err)
	}
	log.ComponentInfo(logging.ComponentDeployer, "Deploying with account",
		zap.String("account", acct.Address().Hex()),
		zap.String("source", acct.Source()))
	d.transition(StateSignerResolved)

	// Factory
	art, err := d.artifacts.Lookup(contract)
	if err != nil {
		return nil, d.fail(err)
	}
	log.ComponentDebug(logging.ComponentArtifact, "Artifact resolved",
		zap.String("contract", art.FullyQualifiedName()),
		zap.String("path", art.Path),
		zap.Int("bytecode_size", len(art.Bytecode)))

	if err := ctx.Err(); err != nil {
		return nil, d.fail(errors.Wrapf(err, "deployment of %s cancelled before submission", contract))
	}

	client, err := d.dial(ctx, d.netCfg)
	if err != nil {
		return nil, d.fail(err)
	}
	defer client.Close()

	chainID := client.ChainIDValue()
	log.ComponentDebug(logging.ComponentNetwork, "Connected",
		zap.String("url", d.netCfg.URL), zap.String("chain_id", chainID.String()))

	factory := NewContractFactory(art, acct, client).WithGasLimit(d.cfg.Deploy.GasLimit)
	d.transition(StateFactoryResolved)

	// Submit
	if err := ctx.Err(); err != nil {
		return nil, d.fail(errors.Wrapf(err, "deployment of %s cancelled before submission", contract))
	}
	pending, err := factory.Deploy(ctx)
	if err != nil {
		return nil, d.fail(err)
	}
	pending.pollInterval = d.poll
	d.transition(StateTxSubmitted)
	log.ComponentInfo(logging.ComponentNetwork, "Deployment transaction sent",
		zap.String("tx", pending.Tx.Hash().Hex()),
		zap.String("expected_address", pending.Address.Hex()))

	// Confirm
	waitCtx, cancel := chain.WaitTimeout(ctx, d.cfg.Deploy.ConfirmTimeout)
	defer cancel()
	inst, err := pending.Wait(waitCtx, d.cfg.Deploy.Confirmations)
	if err != nil {
		return nil, d.fail(err)
	}
	d.transition(StateConfirmed)

	dep := &Deployment{
		DeployedInstance: *inst,
		Contract:         art.Name,
		Network:          d.network,
		ChainID:          chainID,
		RunID:            runID,
		DeployedAt:       d.now().UTC(),
	}
	log.ComponentInfo(logging.ComponentDeployer, "Deployment confirmed",
		zap.String("contract", dep.Contract),
		zap.String("address", dep.Address.Hex()),
		zap.Uint64("block", dep.BlockNumber),
		zap.Uint64("gas_used", dep.GasUsed))

	// The instance exists on-chain regardless of what happens to the record.
	if dir := d.cfg.Paths.Deployments; dir != "" {
		path, err := WriteRecord(dir, Record{
			Contract:           dep.Contract,
			FullyQualifiedName: art.FullyQualifiedName(),
			Network:            dep.Network,
			ChainID:            chainID.Uint64(),
			Address:            dep.Address.Hex(),
			TxHash:             dep.TxHash.Hex(),
			BlockNumber:        dep.BlockNumber,
			GasUsed:            dep.GasUsed,
			Deployer:           dep.Deployer.Hex(),
			DeployedAt:         dep.DeployedAt,
			RunID:              runID,
		})
		if err != nil {
			log.ComponentWarn(logging.ComponentDeployer, "Failed to write deployment record", zap.Error(err))
		} else {
			dep.RecordPath = path
		}
	}

	d.transition(StateDone)
	return dep, nil
}
