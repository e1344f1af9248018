// Package signer resolves the accounts that authorize deployment
// transactions from explicit configuration: hex private keys and go-ethereum
// V3 keystore files.
package signer

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/DeBrosOfficial/privatevote/pkg/config/validate"
)

// Signer is an identity that can authorize a transaction.
type Signer struct {
	address common.Address
	key     *ecdsa.PrivateKey
	source  string
}

// Address returns the signer's account address.
func (s *Signer) Address() common.Address {
	return s.address
}

// Source describes where the signer came from, e.g. "private_keys[0]".
func (s *Signer) Source() string {
	return s.source
}

// String returns the checksummed address; the key is never printed.
func (s *Signer) String() string {
	return s.address.Hex()
}

// TransactOpts returns transaction options that sign with this account for
// the given chain. ctx bounds the calls bind makes while building the
// transaction.
func (s *Signer) TransactOpts(ctx context.Context, chainID *big.Int) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(s.key, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	opts.Context = ctx
	return opts, nil
}

// FromHex builds a signer from a hex private key, with or without 0x. The
// error never echoes the key.
func FromHex(hexKey string) (*Signer, error) {
	if err := validate.ValidatePrivateKey(hexKey); err != nil {
		return nil, err
	}
	hexKey = strings.TrimSpace(hexKey)
	hexKey = strings.TrimPrefix(strings.TrimPrefix(hexKey, "0x"), "0X")

	key, err := ethcrypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, err
	}
	return &Signer{
		address: ethcrypto.PubkeyToAddress(key.PublicKey),
		key:     key,
		source:  "private_key",
	}, nil
}

// FromKeystore decrypts a V3 keystore file.
func FromKeystore(path, passphrase string) (*Signer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keystore %s: %w", path, err)
	}
	key, err := keystore.DecryptKey(data, passphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt keystore %s: %w", path, err)
	}
	return &Signer{
		address: key.Address,
		key:     key.PrivateKey,
		source:  "keystore",
	}, nil
}
