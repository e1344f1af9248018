package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvNetwork      = "DEPLOYER_NETWORK"
	EnvRPCURL       = "DEPLOYER_RPC_URL"
	EnvPrivateKey   = "DEPLOYER_PRIVATE_KEY"
	EnvContract     = "DEPLOYER_CONTRACT"
	EnvArtifactsDir = "DEPLOYER_ARTIFACTS_DIR"
)

// DefaultEnvFile is read from the working directory when present.
const DefaultEnvFile = ".env"

// Env looks up an environment variable.
type Env func(key string) (string, bool)

// OSEnv is the process environment.
func OSEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// WithEnvFile layers the variables from a dotenv file under base: values
// already present in base win. A missing file is an error only when required.
func WithEnvFile(base Env, path string, required bool) (Env, error) {
	if base == nil {
		base = OSEnv
	}
	if path == "" {
		return base, nil
	}

	vars, err := godotenv.Read(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return base, nil
		}
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}

	return func(key string) (string, bool) {
		if v, ok := base(key); ok {
			return v, true
		}
		v, ok := vars[key]
		return v, ok
	}, nil
}

var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expand replaces ${VAR} references; unset variables become "". Anything
// else, including a bare $, is left as written.
func (e Env) expand(s string) string {
	return envRef.ReplaceAllStringFunc(s, func(ref string) string {
		v, _ := e(ref[2 : len(ref)-1])
		return v
	})
}

// expandRefs resolves ${VAR} references in the fields that may carry
// secrets or per-machine locations.
func (c *Config) expandRefs(env Env) {
	for name, nc := range c.Networks {
		nc.URL = env.expand(nc.URL)
		nc.Accounts.Keystore = env.expand(nc.Accounts.Keystore)
		if len(nc.Accounts.PrivateKeys) > 0 {
			keys := make([]string, len(nc.Accounts.PrivateKeys))
			for i, k := range nc.Accounts.PrivateKeys {
				keys[i] = env.expand(k)
			}
			nc.Accounts.PrivateKeys = keys
		}
		c.Networks[name] = nc
	}
	c.Paths.Artifacts = env.expand(c.Paths.Artifacts)
	c.Paths.Deployments = env.expand(c.Paths.Deployments)
}

// applyEnv applies DEPLOYER_* overrides. network is the network selected by
// the caller (flag), which takes precedence over DEPLOYER_NETWORK.
func (c *Config) applyEnv(env Env, network string) {
	if v, ok := env(EnvNetwork); ok && v != "" {
		c.DefaultNetwork = v
	}
	if network != "" {
		c.DefaultNetwork = network
	}

	if c.Networks == nil {
		c.Networks = make(map[string]NetworkConfig)
	}
	nc := c.Networks[c.DefaultNetwork]
	changed := false

	if v, ok := env(EnvRPCURL); ok && v != "" {
		nc.URL = v
		changed = true
	}
	if v, ok := env(EnvPrivateKey); ok && strings.TrimSpace(v) != "" {
		nc.Accounts.PrivateKeys = strings.Split(v, ",")
		changed = true
	}
	if changed {
		if nc.Accounts.KeystorePasswordEnv == "" {
			nc.Accounts.KeystorePasswordEnv = DefaultKeystorePasswordEnv
		}
		c.Networks[c.DefaultNetwork] = nc
	}

	if v, ok := env(EnvContract); ok && v != "" {
		c.Deploy.Contract = v
	}
	if v, ok := env(EnvArtifactsDir); ok && v != "" {
		c.Paths.Artifacts = v
	}
}
