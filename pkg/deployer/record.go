package deployer

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Record is the on-disk summary of a successful deployment.
type Record struct {
	Contract           string    `yaml:"contract"`
	FullyQualifiedName string    `yaml:"fully_qualified_name"`
	Network            string    `yaml:"network"`
	ChainID            uint64    `yaml:"chain_id"`
	Address            string    `yaml:"address"`
	TxHash             string    `yaml:"tx_hash"`
	BlockNumber        uint64    `yaml:"block_number"`
	GasUsed            uint64    `yaml:"gas_used"`
	Deployer           string    `yaml:"deployer"`
	DeployedAt         time.Time `yaml:"deployed_at"`
	RunID              string    `yaml:"run_id"`
}

// RecordPath returns <dir>/<network>/<contract>.yaml.
func RecordPath(dir, network, contract string) string {
	return filepath.Join(dir, network, contract+".yaml")
}

// WriteRecord writes r under dir, replacing any earlier record for the same
// contract on the same network.
func WriteRecord(dir string, r Record) (string, error) {
	path := RecordPath(dir, r.Network, r.Contract)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create deployments directory: %w", err)
	}

	data, err := yaml.Marshal(&r)
	if err != nil {
		return "", fmt.Errorf("failed to encode deployment record: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write deployment record: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to write deployment record: %w", err)
	}
	return path, nil
}

// ReadRecord loads a record written by WriteRecord.
func ReadRecord(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deployment record: %w", err)
	}
	var r Record
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode deployment record %s: %w", path, err)
	}
	return &r, nil
}
