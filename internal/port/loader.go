package port

import "ragstore/internal/domain"

// Loader reads documents from an external source.
type Loader interface {
	Load() ([]domain.Document, error)
}
