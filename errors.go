package matndex

import "github.com/maktaba-cloud/matndex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidQuery        = domain.ErrInvalidQuery
	ErrEmptyQuery          = domain.ErrEmptyQuery
	ErrEngineUnavailable   = domain.ErrEngineUnavailable
	ErrEngineError         = domain.ErrEngineError
	ErrMetadataUnavailable = domain.ErrMetadataUnavailable
)
