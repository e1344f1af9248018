package signer

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/DeBrosOfficial/privatevote/pkg/config"
	"github.com/DeBrosOfficial/privatevote/pkg/errors"
)

// PassphraseFunc asks the user for a keystore passphrase.
type PassphraseFunc func(prompt string) (string, error)

type resolver struct {
	network string
	env     config.Env
	prompt  PassphraseFunc
}

// Option configures Resolve.
type Option func(*resolver)

// WithNetwork names the network in errors.
func WithNetwork(name string) Option {
	return func(r *resolver) { r.network = name }
}

// WithEnv sets how the keystore passphrase variable is looked up.
func WithEnv(env config.Env) Option {
	return func(r *resolver) { r.env = env }
}

// WithPrompt sets the interactive fallback for the keystore passphrase. A nil
// prompt disables prompting.
func WithPrompt(prompt PassphraseFunc) Option {
	return func(r *resolver) { r.prompt = prompt }
}

// Resolve returns every signer configured in accounts, private keys first and
// then the keystore account. It returns an empty slice, not an error, when
// nothing is configured; Select turns that into an EnvironmentError.
func Resolve(accounts config.AccountsConfig, opts ...Option) ([]*Signer, error) {
	r := &resolver{env: config.OSEnv, prompt: TerminalPrompt}
	for _, opt := range opts {
		opt(r)
	}

	var signers []*Signer
	for i, key := range accounts.Keys() {
		s, err := FromHex(key)
		if err != nil {
			return nil, errors.NewEnvironmentError(r.network,
				fmt.Sprintf("private_keys[%d] is not a valid private key", i), err)
		}
		s.source = fmt.Sprintf("private_keys[%d]", i)
		signers = append(signers, s)
	}

	if accounts.Keystore != "" {
		passphrase, err := r.passphrase(accounts)
		if err != nil {
			return nil, err
		}
		s, err := FromKeystore(accounts.Keystore, passphrase)
		if err != nil {
			return nil, errors.NewEnvironmentError(r.network, "keystore account unavailable", err)
		}
		signers = append(signers, s)
	}

	return signers, nil
}

func (r *resolver) passphrase(accounts config.AccountsConfig) (string, error) {
	envName := accounts.KeystorePasswordEnv
	if envName == "" {
		envName = config.DefaultKeystorePasswordEnv
	}
	if v, ok := r.env(envName); ok {
		return v, nil
	}
	if r.prompt == nil {
		return "", errors.NewEnvironmentError(r.network,
			fmt.Sprintf("keystore passphrase not provided; set %s", envName), nil)
	}
	pass, err := r.prompt(fmt.Sprintf("Passphrase for %s: ", accounts.Keystore))
	if err != nil {
		return "", errors.NewEnvironmentError(r.network,
			fmt.Sprintf("keystore passphrase not provided; set %s", envName), err)
	}
	return pass, nil
}

// Select picks the signer at index, the way a deploy script takes the first
// of its signers.
func Select(signers []*Signer, index int, network string) (*Signer, error) {
	if len(signers) == 0 {
		return nil, errors.NewEnvironmentError(network, "no accounts configured", errors.ErrNoSigner)
	}
	if index < 0 || index >= len(signers) {
		return nil, errors.NewEnvironmentError(network,
			fmt.Sprintf("account index %d out of range (%d configured)", index, len(signers)), nil)
	}
	return signers[index], nil
}

// TerminalPrompt reads a passphrase from the terminal with echo disabled. It
// fails when stdin is not a terminal.
func TerminalPrompt(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("stdin is not a terminal")
	}
	fmt.Fprint(os.Stderr, prompt)
	pass, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read passphrase: %w", err)
	}
	return string(pass), nil
}
