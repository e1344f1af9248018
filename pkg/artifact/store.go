package artifact

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/DeBrosOfficial/privatevote/pkg/errors"
)

// Store finds artifacts in a directory tree. Files are only read on the
// first Lookup or List.
type Store struct {
	fsys fs.FS

	once      sync.Once
	artifacts []*Artifact
	loadErr   error
}

// NewStore returns a store over fsys. A nil fsys is an empty store.
func NewStore(fsys fs.FS) *Store {
	return &Store{fsys: fsys}
}

// OpenDir returns a store over dir. A missing directory yields an empty
// store so that lookups report the artifact itself as not found.
func OpenDir(dir string) *Store {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return NewStore(nil)
	}
	return NewStore(os.DirFS(dir))
}

func (s *Store) load() error {
	s.once.Do(func() {
		if s.fsys == nil {
			return
		}
		s.loadErr = fs.WalkDir(s.fsys, ".", func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				// Hardhat build-info holds compiler input/output, not artifacts.
				if d.Name() == "build-info" || d.Name() == "cache" {
					return fs.SkipDir
				}
				return nil
			}
			if !isArtifactFile(p) {
				return nil
			}
			data, err := fs.ReadFile(s.fsys, p)
			if err != nil {
				return err
			}
			a, err := Parse(p, data)
			if err != nil {
				// Not every JSON file in the tree is an artifact.
				return nil
			}
			s.artifacts = append(s.artifacts, a)
			return nil
		})
		sort.Slice(s.artifacts, func(i, j int) bool {
			return s.artifacts[i].FullyQualifiedName() < s.artifacts[j].FullyQualifiedName()
		})
	})
	return s.loadErr
}

func isArtifactFile(p string) bool {
	base := path.Base(p)
	return strings.HasSuffix(base, ".json") && !strings.HasSuffix(base, ".dbg.json") && !strings.HasSuffix(base, ".metadata.json")
}

// List returns every artifact found, sorted by fully qualified name.
func (s *Store) List() ([]*Artifact, error) {
	if err := s.load(); err != nil {
		return nil, fmt.Errorf("failed to scan artifacts: %w", err)
	}
	out := make([]*Artifact, len(s.artifacts))
	copy(out, s.artifacts)
	return out, nil
}

// Lookup finds a deployable artifact by contract name ("PrivateVote") or
// fully qualified name ("contracts/PrivateVote.sol:PrivateVote").
func (s *Store) Lookup(name string) (*Artifact, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}

	var matches []*Artifact
	if source, contract, ok := strings.Cut(name, ":"); ok {
		for _, a := range all {
			if a.Name == contract && a.SourceName == source {
				matches = append(matches, a)
			}
		}
		// Foundry records only the file name as the source.
		if len(matches) == 0 {
			for _, a := range all {
				if a.Name == contract && path.Base(a.SourceName) == path.Base(source) {
					matches = append(matches, a)
				}
			}
		}
	} else {
		for _, a := range all {
			if a.Name == name {
				matches = append(matches, a)
			}
		}
	}

	switch len(matches) {
	case 0:
		return nil, errors.NewArtifactNotFoundError(name, "")
	case 1:
	default:
		names := make([]string, len(matches))
		for i, a := range matches {
			names[i] = a.FullyQualifiedName()
		}
		return nil, errors.NewValidationError("contract",
			fmt.Sprintf("multiple artifacts named %q; use one of: %s", name, strings.Join(names, ", ")), name)
	}

	a := matches[0]
	if reason := a.Deployable(); reason != "" {
		return nil, errors.NewArtifactNotFoundError(name, reason)
	}
	return a, nil
}
