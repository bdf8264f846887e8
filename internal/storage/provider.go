// Package storage defines the read-only content directory abstraction.
package storage

import "github.com/starford/cheatsheets/internal/models"

// File is a content file read from the provider.
type File struct {
	models.FileMeta
	Data []byte
}

// Provider is the interface for content file access.
type Provider interface {
	// Root returns the absolute path of the content directory.
	Root() string
	// List returns metadata for every content file in the directory.
	List() ([]models.FileMeta, error)
	// Read returns the file whose name is slug plus the content extension.
	Read(slug string) (*File, error)
	// SlugOf maps a file name to its slug, reporting false for non-content files.
	SlugOf(name string) (string, bool)
}
