package util

import (
	"errors"
	"fmt"
)

var (
	ErrDocumentNotFound  = errors.New("document not found")
	ErrUnknownCollection = errors.New("unknown collection")
)

// RetrievalError reports that a collection could not be read from the store.
type RetrievalError struct {
	Collection string
	Err        error
}

func NewRetrievalError(collection string, err error) *RetrievalError {
	return &RetrievalError{Collection: collection, Err: err}
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieve %s: %v", e.Collection, e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// IsRetrievalError reports whether err wraps a RetrievalError and returns it.
func IsRetrievalError(err error) (*RetrievalError, bool) {
	var re *RetrievalError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
