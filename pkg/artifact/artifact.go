/*
Package artifact reads contract build artifacts produced by Truffle
(build/contracts/<Name>.json files) containing contract bytecode, ABI and
per-network deployment addresses.
*/
package artifact

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/evmclient/evm-go/pkg/manifest"
	"github.com/evmclient/evm-go/pkg/util"
	lru "github.com/hashicorp/golang-lru"
)

// DefaultCacheSize is the number of parsed artifacts kept by Finder.
const DefaultCacheSize = 64

// ErrNotFound is returned when no artifact file exists in any of the search
// paths.
var ErrNotFound = errors.New("artifact not found")

type (
	// Artifact is a parsed Truffle artifact.
	Artifact struct {
		ContractName string
		// Bytecode is the contract creation code.
		Bytecode []byte
		ABI      *manifest.ABI
		// Networks maps network identifiers (as returned by net_version) to
		// deployment data.
		Networks map[string]Network
		// Path is the file the artifact was read from.
		Path string
	}

	// Network is the deployment data for a single network.
	Network struct {
		Address         util.Address `json:"address"`
		TransactionHash string       `json:"transactionHash,omitempty"`
	}

	artifactAux struct {
		ContractName string             `json:"contractName"`
		ABI          json.RawMessage    `json:"abi"`
		Bytecode     string             `json:"bytecode"`
		Networks     map[string]Network `json:"networks"`
	}

	// Finder looks for artifacts in the given list of project directories.
	// It's safe for concurrent use.
	Finder struct {
		paths []string
		cache *lru.Cache
	}
)

// NewFinder creates a Finder searching the given project paths in order.
func NewFinder(paths ...string) *Finder {
	c, _ := lru.New(DefaultCacheSize) // Never errors for positive size.
	return &Finder{
		paths: paths,
		cache: c,
	}
}

// Paths returns the list of search paths.
func (f *Finder) Paths() []string {
	return f.paths
}

// Find returns the artifact for the given contract name from the first
// path where <path>/build/contracts/<name>.json exists.
func (f *Finder) Find(name string) (*Artifact, error) {
	for _, p := range f.paths {
		file := filepath.Join(p, "build", "contracts", name+".json")
		if a, ok := f.cache.Get(file); ok {
			return a.(*Artifact), nil
		}
		a, err := Load(file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		f.cache.Add(file, a)
		return a, nil
	}
	return nil, fmt.Errorf("%w: %s in %s", ErrNotFound, name, strings.Join(f.paths, ", "))
}

// Load reads the artifact from the given file.
func Load(file string) (*Artifact, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	a, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	a.Path = file
	return a, nil
}

// Parse parses artifact JSON.
func Parse(data []byte) (*Artifact, error) {
	var aux artifactAux
	if err := json.Unmarshal(data, &aux); err != nil {
		return nil, err
	}
	if len(aux.ABI) == 0 {
		return nil, errors.New("no ABI")
	}
	abi, err := manifest.Parse(aux.ABI)
	if err != nil {
		return nil, err
	}
	code, err := hex.DecodeString(strings.TrimPrefix(aux.Bytecode, "0x"))
	if err != nil {
		return nil, fmt.Errorf("bad bytecode (unlinked library?): %w", err)
	}
	return &Artifact{
		ContractName: aux.ContractName,
		Bytecode:     code,
		ABI:          abi,
		Networks:     aux.Networks,
	}, nil
}

// Address returns the deployment address for the given network.
func (a *Artifact) Address(network string) (util.Address, bool) {
	n, ok := a.Networks[network]
	return n.Address, ok
}
