// Package artifact locates compiled contract artifacts by name. It reads
// the JSON files Hardhat writes under artifacts/ and Foundry writes under
// out/.
package artifact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Artifact is a compiled contract: its interface and creation bytecode.
type Artifact struct {
	Name       string
	SourceName string
	ABI        abi.ABI
	Bytecode   []byte
	Path       string

	// unlinked is set when the bytecode still has library placeholders.
	unlinked bool
}

// FullyQualifiedName returns "source.sol:Name", or just Name when the source
// is unknown.
func (a *Artifact) FullyQualifiedName() string {
	if a.SourceName == "" {
		return a.Name
	}
	return a.SourceName + ":" + a.Name
}

// Deployable reports why the artifact cannot be deployed, or "" if it can.
func (a *Artifact) Deployable() string {
	switch {
	case a.unlinked:
		return "bytecode has unlinked library references"
	case len(a.Bytecode) == 0:
		return "no bytecode (abstract contract or interface)"
	default:
		return ""
	}
}

// rawArtifact covers both layouts. Hardhat stores bytecode as a hex string;
// Foundry stores an object with the hex under "object".
type rawArtifact struct {
	Format       string          `json:"_format"`
	ContractName string          `json:"contractName"`
	SourceName   string          `json:"sourceName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     json.RawMessage `json:"bytecode"`
}

type foundryBytecode struct {
	Object string `json:"object"`
}

// Parse decodes one artifact file. filePath is used to infer the contract
// and source names when the file does not carry them (Foundry).
func Parse(filePath string, data []byte) (*Artifact, error) {
	var raw rawArtifact
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode artifact %s: %w", filePath, err)
	}
	if len(raw.ABI) == 0 {
		return nil, fmt.Errorf("artifact %s has no abi", filePath)
	}

	parsedABI, err := abi.JSON(bytes.NewReader(raw.ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse abi in %s: %w", filePath, err)
	}

	code, err := bytecodeHex(raw.Bytecode)
	if err != nil {
		return nil, fmt.Errorf("failed to read bytecode in %s: %w", filePath, err)
	}

	a := &Artifact{
		Name:       raw.ContractName,
		SourceName: raw.SourceName,
		ABI:        parsedABI,
		Path:       filePath,
	}
	if a.Name == "" {
		a.Name = strings.TrimSuffix(path.Base(filePath), ".json")
	}
	if a.SourceName == "" {
		// Foundry: out/PrivateVote.sol/PrivateVote.json
		if dir := path.Base(path.Dir(filePath)); strings.HasSuffix(dir, ".sol") {
			a.SourceName = dir
		}
	}

	// Library placeholders look like __$<34 hex>$__ and are not valid hex.
	if strings.Contains(code, "__") {
		a.unlinked = true
		return a, nil
	}
	if code != "" && code != "0x" {
		b, err := hexutil.Decode(ensure0x(code))
		if err != nil {
			return nil, fmt.Errorf("invalid bytecode in %s: %w", filePath, err)
		}
		a.Bytecode = b
	}
	return a, nil
}

func bytecodeHex(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var fb foundryBytecode
	if err := json.Unmarshal(raw, &fb); err != nil {
		return "", err
	}
	return fb.Object, nil
}

func ensure0x(s string) string {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s
	}
	return "0x" + s
}
