package config

import (
	"fmt"
	"sort"
	"time"
)

// Config represents the main configuration for a deployment run
type Config struct {
	DefaultNetwork string                   `yaml:"default_network"`
	Networks       map[string]NetworkConfig `yaml:"networks"`
	Paths          PathsConfig              `yaml:"paths"`
	Deploy         DeployConfig             `yaml:"deploy"`
	Logging        LoggingConfig            `yaml:"logging"`

	// Source is the file the config was read from; empty for defaults.
	Source string `yaml:"-"`

	env Env
}

// PathsConfig contains filesystem locations
type PathsConfig struct {
	Artifacts   string `yaml:"artifacts"`   // Compiled artifacts (Hardhat artifacts/ or Foundry out/)
	Deployments string `yaml:"deployments"` // Deployment records; empty disables them
}

// DeployConfig controls the deployment itself
type DeployConfig struct {
	Contract       string        `yaml:"contract"`        // Artifact name or fully qualified name
	AccountIndex   int           `yaml:"account_index"`   // Which configured signer deploys
	Confirmations  uint64        `yaml:"confirmations"`   // Blocks including the tx before it counts as confirmed
	ConfirmTimeout time.Duration `yaml:"confirm_timeout"` // 0 waits indefinitely
	GasLimit       uint64        `yaml:"gas_limit"`       // 0 lets the node estimate
}

// DefaultContract is the artifact deployed when none is configured.
const DefaultContract = "PrivateVote"

// DefaultNetworkName is the network used when none is selected.
const DefaultNetworkName = "localhost"

// MaxConfirmations bounds deploy.confirmations.
const MaxConfirmations = 1000

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		DefaultNetwork: DefaultNetworkName,
		Networks: map[string]NetworkConfig{
			DefaultNetworkName: {
				URL:     "http://127.0.0.1:8545",
				ChainID: 31337,
				Timeout: 20 * time.Second,
				Accounts: AccountsConfig{
					KeystorePasswordEnv: DefaultKeystorePasswordEnv,
				},
			},
		},
		Paths: PathsConfig{
			Artifacts:   "./artifacts",
			Deployments: "",
		},
		Deploy: DeployConfig{
			Contract:       DefaultContract,
			AccountIndex:   0,
			Confirmations:  1,
			ConfirmTimeout: 0,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Colors: "auto",
		},
	}
}

// Network returns the named network, or the default network when name is
// empty, together with the name that was resolved.
func (c *Config) Network(name string) (string, NetworkConfig, error) {
	if name == "" {
		name = c.DefaultNetwork
	}
	nc, ok := c.Networks[name]
	if !ok {
		return name, NetworkConfig{}, fmt.Errorf("network %q is not configured (known: %v)", name, c.NetworkNames())
	}
	return name, nc, nil
}

// NetworkNames returns the configured network names in sorted order.
func (c *Config) NetworkNames() []string {
	names := make([]string, 0, len(c.Networks))
	for name := range c.Networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupEnv resolves an environment variable the way the config was loaded:
// the process environment first, then any .env file.
func (c *Config) LookupEnv(key string) (string, bool) {
	if c.env == nil {
		return OSEnv(key)
	}
	return c.env(key)
}
