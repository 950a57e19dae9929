package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/maktaba-cloud/matndex/internal/domain"
)

// FileSource loads the catalog from a single JSON file.
type FileSource struct {
	path string
}

// NewFileSource creates a file-backed catalog source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

type textDTO struct {
	ID          int               `json:"id"`
	Title       string            `json:"title"`
	AuthorID    int               `json:"author_id"`
	Tags        []string          `json:"tags"`
	VolumeCount int               `json:"volume_count"`
	Extra       map[string]string `json:"extra"`
}

type authorDTO struct {
	ID          int               `json:"id"`
	Name        string            `json:"name"`
	DeathDateAH *int              `json:"death_date_ah"`
	BirthDateAH *int              `json:"birth_date_ah"`
	Extra       map[string]string `json:"extra"`
}

type catalogDTO struct {
	Texts   []textDTO   `json:"texts"`
	Authors []authorDTO `json:"authors"`
}

// Load reads and decodes the catalog file.
func (f *FileSource) Load(_ context.Context) ([]domain.Text, []domain.Author, error) {
	raw, err := os.ReadFile(filepath.Clean(f.path))
	if err != nil {
		return nil, nil, fmt.Errorf("read catalog %s: %w", f.path, err)
	}

	var dto catalogDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return nil, nil, fmt.Errorf("parse catalog %s: %w", f.path, err)
	}

	texts := make([]domain.Text, len(dto.Texts))
	for i, t := range dto.Texts {
		texts[i] = domain.Text{
			ID:          t.ID,
			Title:       t.Title,
			AuthorID:    t.AuthorID,
			Tags:        t.Tags,
			VolumeCount: t.VolumeCount,
			Extra:       t.Extra,
		}
	}

	authors := make([]domain.Author, len(dto.Authors))
	for i, a := range dto.Authors {
		authors[i] = domain.Author{
			ID:          a.ID,
			Name:        a.Name,
			DeathDateAH: a.DeathDateAH,
			BirthDateAH: a.BirthDateAH,
			Extra:       a.Extra,
		}
	}

	return texts, authors, nil
}
