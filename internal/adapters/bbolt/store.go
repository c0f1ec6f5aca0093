// Package bbolt implements the ports.Storage interface using bbolt (embedded B+ tree).
// Each project gets its own top-level bucket. Within that bucket, the "files"
// sub-bucket maps a relative path to its gob-encoded artifact. Writes are
// transactional: a crash mid-write cannot corrupt previously committed data.
package bbolt

import (
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/corey/xci/internal/ports"
)

var bucketFiles = []byte("files")

// Store implements ports.Storage backed by bbolt.
type Store struct {
	db *bolt.DB
}

var _ ports.Storage = (*Store)(nil)

// NewStore opens (or creates) a bbolt database at the given path. It gives
// up after one second if another process holds the lock.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// filesBucket returns the files bucket of a project, or nil.
func filesBucket(tx *bolt.Tx, projectID string) *bolt.Bucket {
	proj := tx.Bucket([]byte(projectID))
	if proj == nil {
		return nil
	}
	return proj.Bucket(bucketFiles)
}

// PutArtifact stores a under its path.
func (s *Store) PutArtifact(projectID string, a *ports.FileArtifact) error {
	if a == nil {
		return fmt.Errorf("nil artifact")
	}
	if a.Path == "" {
		return fmt.Errorf("artifact without path")
	}
	data, err := encodeArtifact(a)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		proj, err := tx.CreateBucketIfNotExists([]byte(projectID))
		if err != nil {
			return err
		}
		fb, err := proj.CreateBucketIfNotExists(bucketFiles)
		if err != nil {
			return err
		}
		return fb.Put([]byte(a.Path), data)
	})
}

// GetArtifact returns the artifact stored for path, or nil, nil.
func (s *Store) GetArtifact(projectID, path string) (*ports.FileArtifact, error) {
	var a *ports.FileArtifact
	err := s.db.View(func(tx *bolt.Tx) error {
		fb := filesBucket(tx, projectID)
		if fb == nil {
			return nil
		}
		v := fb.Get([]byte(path))
		if v == nil {
			return nil
		}
		var err error
		a, err = decodeArtifact(v)
		return err
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListArtifacts returns every artifact of a project in path order (bbolt
// keeps keys sorted).
func (s *Store) ListArtifacts(projectID string) ([]*ports.FileArtifact, error) {
	var out []*ports.FileArtifact
	err := s.db.View(func(tx *bolt.Tx) error {
		fb := filesBucket(tx, projectID)
		if fb == nil {
			return nil
		}
		return fb.ForEach(func(k, v []byte) error {
			a, err := decodeArtifact(v)
			if err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
			out = append(out, a)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteArtifact removes the artifact for path. Missing artifacts are ignored.
func (s *Store) DeleteArtifact(projectID, path string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		fb := filesBucket(tx, projectID)
		if fb == nil {
			return nil
		}
		return fb.Delete([]byte(path))
	})
}

// DeleteProject removes all artifacts of a project.
// Idempotent: deleting a nonexistent project is not an error.
func (s *Store) DeleteProject(projectID string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		err := tx.DeleteBucket([]byte(projectID))
		if errors.Is(err, bolt.ErrBucketNotFound) {
			return nil
		}
		return err
	})
}
