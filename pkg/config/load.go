package config

import (
	"bytes"
	"fmt"
	"os"
)

// LoadOptions controls where configuration comes from.
type LoadOptions struct {
	// Path is an explicit config file. Empty means DefaultPath().
	Path string
	// EnvFile is an explicit dotenv file. Empty means ./.env if it exists.
	EnvFile string
	// Network selects the network, overriding the file and DEPLOYER_NETWORK.
	Network string
	// Env replaces the process environment; used by tests.
	Env Env
}

// Load builds the configuration: defaults, then the YAML file, then ${VAR}
// references in URLs, keys and paths, then DEPLOYER_* environment overrides.
func Load(opts LoadOptions) (*Config, error) {
	envFile, required := opts.EnvFile, true
	if envFile == "" {
		envFile, required = DefaultEnvFile, false
	}
	env, err := WithEnvFile(opts.Env, envFile, required)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	cfg.env = env

	path := opts.Path
	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := DecodeStrict(bytes.NewReader(data), cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		cfg.expandRefs(env)
		cfg.Source = path
	}

	cfg.applyEnv(env, opts.Network)
	return cfg, nil
}
