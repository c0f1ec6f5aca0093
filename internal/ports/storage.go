// Package ports defines the interfaces (contracts) that adapters must implement.
// These are the boundaries of the hexagonal architecture. Application code
// depends only on these interfaces, never on concrete implementations.
package ports

import "github.com/corey/xci/internal/domain/chunk"

// Storage persists per-file artifacts produced by indexing.
// The backing store (bbolt) is project-scoped: each projectID gets its own
// namespace. Concurrent reads are safe; writes are serialized by the adapter.
//
// Crash safety: every write is transactional. A crash mid-write must not
// corrupt previously committed artifacts.
type Storage interface {
	// PutArtifact stores a, replacing any artifact with the same path.
	PutArtifact(projectID string, a *FileArtifact) error

	// GetArtifact returns the artifact for path.
	// Returns nil, nil if none is stored.
	GetArtifact(projectID, path string) (*FileArtifact, error)

	// ListArtifacts returns every artifact of a project ordered by path.
	ListArtifacts(projectID string) ([]*FileArtifact, error)

	// DeleteArtifact removes the artifact for path. Deleting a missing
	// artifact is not an error.
	DeleteArtifact(projectID, path string) error

	// DeleteProject removes all artifacts of a project.
	// Idempotent: deleting a nonexistent project is not an error.
	DeleteProject(projectID string) error
}

// FileArtifact is everything indexing derives from one source file.
type FileArtifact struct {
	Path      string        `json:"path"` // relative to the project root, slash separated
	Language  string        `json:"language"`
	Hash      uint64        `json:"hash"` // xxhash of the file content
	Size      int           `json:"size"`
	Filemap   string        `json:"filemap"`
	Symbols   []NamedSymbol `json:"symbols"`
	IndexedAt int64         `json:"indexed_at"` // unix seconds
}

// NamedSymbol is a scope-graph definition together with its identifier.
type NamedSymbol struct {
	Name string `json:"name"`
	chunk.Symbol
}
