// Package claims provides read-only claims-history sources keyed by policyholder.
// Supports multiple backends: in-memory, JSON file, PostgreSQL.
package claims

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"sync"

	"premium-engine/core/types"
	apperrors "premium-engine/internal/errors"
)

// Backend is a claims source backend type
type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendFile     Backend = "file"
	BackendPostgres Backend = "postgres"
)

// Source looks up the claim history of a policyholder.
// An unknown holder is an error; a known holder without claims yields an empty slice.
type Source interface {
	ClaimsByHolder(ctx context.Context, holderID string) ([]types.Claim, error)

	// Close releases the underlying resources
	Close() error
}

// MemorySource is an in-memory claims source
type MemorySource struct {
	histories map[string][]types.Claim
	mu        sync.RWMutex
}

// NewMemorySource creates a memory source seeded with histories
func NewMemorySource(histories map[string][]types.Claim) *MemorySource {
	s := &MemorySource{histories: make(map[string][]types.Claim, len(histories))}
	for holder, claims := range histories {
		s.Put(holder, claims)
	}
	return s
}

// Put registers (or replaces) a holder's history
func (s *MemorySource) Put(holderID string, claims []types.Claim) {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]types.Claim, len(claims))
	copy(copied, claims)
	s.histories[holderID] = copied
}

func (s *MemorySource) ClaimsByHolder(ctx context.Context, holderID string) ([]types.Claim, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	claims, ok := s.histories[holderID]
	if !ok {
		return nil, apperrors.NotFound("policyholder", holderID)
	}
	out := make([]types.Claim, len(claims))
	copy(out, claims)
	return out, nil
}

func (s *MemorySource) Close() error {
	return nil
}

// NewFileSource loads a JSON document mapping holder IDs to claim lists:
//
//	{"H-1": [{"type": "THEFT", "amount": "1200.00"}], "H-2": []}
func NewFileSource(path string) (*MemorySource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Config("failed to read claims file", err).WithContext("path", path)
	}
	var histories map[string][]types.Claim
	if err := json.Unmarshal(data, &histories); err != nil {
		return nil, apperrors.Parsing("invalid claims file "+path, err)
	}
	return NewMemorySource(histories), nil
}

// Options selects and configures a backend
type Options struct {
	Backend Backend
	Path    string
	DSN     string
}

// Open creates a source by backend type
func Open(ctx context.Context, opts Options) (Source, error) {
	switch opts.Backend {
	case BackendMemory, "":
		return NewMemorySource(nil), nil
	case BackendFile:
		src, err := NewFileSource(opts.Path)
		if err != nil {
			return nil, err
		}
		return src, nil
	case BackendPostgres:
		src, err := OpenPostgres(ctx, opts.DSN)
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		return nil, apperrors.Newf(apperrors.TypeConfig, "unsupported claims backend: %s", opts.Backend)
	}
}

// Ensure interfaces are implemented
var _ io.Closer = (*MemorySource)(nil)
var _ Source = (*MemorySource)(nil)
