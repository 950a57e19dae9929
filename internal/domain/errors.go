package domain

import "errors"

var (
	// ErrInvalidQuery signals a structurally invalid search query
	// (a wildcard combined with a multi-word phrase).
	ErrInvalidQuery = errors.New("invalid query")
	// ErrEmptyQuery signals a blank search query.
	ErrEmptyQuery = errors.New("empty query")
	// ErrEngineUnavailable signals that the search engine could not be reached.
	ErrEngineUnavailable = errors.New("search engine unavailable")
	// ErrEngineError signals a non-success or malformed engine response.
	ErrEngineError = errors.New("search engine error")
	// ErrMetadataUnavailable signals that the text/author metadata snapshot
	// could not be loaded.
	ErrMetadataUnavailable = errors.New("metadata unavailable")
	// ErrIndexExists signals that the corpus index already exists.
	ErrIndexExists = errors.New("index already exists")
	// ErrIndexNotFound signals a missing corpus index.
	ErrIndexNotFound = errors.New("index not found")
)
