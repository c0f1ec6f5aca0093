package treesitter

import (
	"errors"
	"fmt"
)

// All errors are terminal for the call that returned them; callers skip the
// file or surface the error.
var (
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrFileTooLarge        = errors.New("file too large")
	ErrLanguageMismatch    = errors.New("grammar could not be bound to parser")
	ErrParseTimeout        = errors.New("parse timed out")
	ErrConsumed            = errors.New("file already consumed")
	ErrInvalidEncoding     = errors.New("source is not valid utf-8")
	ErrGrammarNotFound     = errors.New("grammar library not found")
)

// QueryError wraps a structural query that failed to compile or run.
type QueryError struct {
	Language string
	Query    string // "hoverable" or "scope"
	Err      error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s %s query: %v", e.Language, e.Query, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
