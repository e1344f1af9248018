package config

import (
	"strings"
	"time"
)

// DefaultKeystorePasswordEnv names the variable holding the keystore passphrase.
const DefaultKeystorePasswordEnv = "DEPLOYER_KEYSTORE_PASSWORD"

// NetworkConfig describes one JSON-RPC endpoint and its accounts
type NetworkConfig struct {
	URL      string         `yaml:"url"`      // http(s)://, ws(s):// or an IPC path
	ChainID  uint64         `yaml:"chain_id"` // 0 accepts whatever the node reports
	Timeout  time.Duration  `yaml:"timeout"`  // Dial timeout
	Accounts AccountsConfig `yaml:"accounts"`
}

// AccountsConfig lists the signers available on a network
type AccountsConfig struct {
	PrivateKeys         []string `yaml:"private_keys"`          // Hex keys, ${VAR} references expanded at load
	Keystore            string   `yaml:"keystore"`              // Path to a V3 keystore JSON file
	KeystorePasswordEnv string   `yaml:"keystore_password_env"` // Variable holding the keystore passphrase
}

// Keys returns the configured private keys with blank entries removed. Blank
// entries come from ${VAR} references to unset variables.
func (a AccountsConfig) Keys() []string {
	keys := make([]string, 0, len(a.PrivateKeys))
	for _, k := range a.PrivateKeys {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// Empty reports whether no signer source is configured.
func (a AccountsConfig) Empty() bool {
	return len(a.Keys()) == 0 && strings.TrimSpace(a.Keystore) == ""
}
