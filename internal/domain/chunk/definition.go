package chunk

import (
	"encoding/json"
	"fmt"
)

// DefinitionKind tags a Definition. The set is closed for decoding but new
// kinds may be added here without affecting existing consumers.
type DefinitionKind string

const (
	FunctionDef DefinitionKind = "function_def"
	ClassDef    DefinitionKind = "class_def"
)

var knownDefinitionKinds = map[DefinitionKind]bool{
	FunctionDef: true,
	ClassDef:    true,
}

// Definition is an entity whose declaration line matched a requested row.
type Definition struct {
	Kind       DefinitionKind
	FilePath   string
	LineNumber int
	Name       string
}

// definitionContent is the payload half of the tagged wire form.
type definitionContent struct {
	FilePath   string `json:"file_path"`
	LineNumber int    `json:"line_number"`
	Name       string `json:"name"`
}

type definitionJSON struct {
	Type    DefinitionKind    `json:"type"`
	Content definitionContent `json:"content"`
}

// MarshalJSON encodes the definition as {"type": ..., "content": {...}}.
func (d Definition) MarshalJSON() ([]byte, error) {
	if !knownDefinitionKinds[d.Kind] {
		return nil, fmt.Errorf("definition %q: unknown kind %q", d.Name, d.Kind)
	}
	return json.Marshal(definitionJSON{
		Type: d.Kind,
		Content: definitionContent{
			FilePath:   d.FilePath,
			LineNumber: d.LineNumber,
			Name:       d.Name,
		},
	})
}

// UnmarshalJSON decodes the tagged wire form. Unknown tags are rejected.
func (d *Definition) UnmarshalJSON(data []byte) error {
	var dj definitionJSON
	if err := json.Unmarshal(data, &dj); err != nil {
		return err
	}
	if !knownDefinitionKinds[dj.Type] {
		return fmt.Errorf("unknown definition type %q", dj.Type)
	}
	*d = Definition{
		Kind:       dj.Type,
		FilePath:   dj.Content.FilePath,
		LineNumber: dj.Content.LineNumber,
		Name:       dj.Content.Name,
	}
	return nil
}

func (d Definition) String() string {
	return fmt.Sprintf("%s:%d %s (%s)", d.FilePath, d.LineNumber, d.Name, d.Kind)
}
