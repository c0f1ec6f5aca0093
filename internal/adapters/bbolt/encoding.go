package bbolt

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/corey/xci/internal/ports"
)

// encodeArtifact gob-encodes an artifact. Filemaps dominate the size, and
// gob stores them without the escaping JSON would add.
func encodeArtifact(a *ports.FileArtifact) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(a); err != nil {
		return nil, fmt.Errorf("encode artifact %s: %w", a.Path, err)
	}
	return buf.Bytes(), nil
}

// decodeArtifact decodes a value written by encodeArtifact. data may be a
// bbolt slice; nothing in the result aliases it.
func decodeArtifact(data []byte) (*ports.FileArtifact, error) {
	var a ports.FileArtifact
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&a); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	return &a, nil
}
