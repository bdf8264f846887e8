package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/starford/cheatsheets/internal/apperr"
	"github.com/starford/cheatsheets/internal/checksum"
	"github.com/starford/cheatsheets/internal/models"
)

// DefaultExt is the content file extension used when none is configured.
const DefaultExt = ".md"

// FS implements Provider backed by a flat directory on the local file system.
type FS struct {
	root string // absolute path to content directory
	ext  string
}

// NewFS creates a provider rooted at dir. The directory does not have to
// exist yet; listing a missing directory reports apperr.ErrNotFound.
func NewFS(dir, ext string) (*FS, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root: %w", err)
	}
	if info, err := os.Stat(abs); err == nil && !info.IsDir() {
		return nil, fmt.Errorf("storage: root is not a directory: %s", abs)
	}
	if ext == "" {
		ext = DefaultExt
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return &FS{root: abs, ext: ext}, nil
}

// Root returns the absolute content directory.
func (f *FS) Root() string { return f.root }

// SlugOf strips the content extension from a base file name.
func (f *FS) SlugOf(name string) (string, bool) {
	if !strings.HasSuffix(name, f.ext) {
		return "", false
	}
	slug := strings.TrimSuffix(name, f.ext)
	if slug == "" || strings.HasPrefix(slug, ".") {
		return "", false
	}
	return slug, true
}

// slugPath resolves a slug to a file path and rejects anything that would
// leave the content directory.
func (f *FS) slugPath(slug string) (string, error) {
	if slug == "" || slug == "." || slug == ".." ||
		strings.ContainsAny(slug, `/\`) || strings.ContainsRune(slug, 0) {
		return "", fmt.Errorf("storage: invalid slug %q: %w", slug, apperr.ErrNotFound)
	}
	abs := filepath.Join(f.root, slug+f.ext)
	if filepath.Dir(abs) != f.root {
		return "", fmt.Errorf("storage: slug escapes content root: %q: %w", slug, apperr.ErrNotFound)
	}
	return abs, nil
}

// List returns metadata for every content file, sorted by name.
// Subdirectories are not descended into.
func (f *FS) List() ([]models.FileMeta, error) {
	entries, err := os.ReadDir(f.root)
	if err != nil {
		return nil, classify("list", f.root, err)
	}
	out := make([]models.FileMeta, 0, len(entries))
	for _, e := range entries {
		slug, ok := f.SlugOf(e.Name())
		if !ok {
			continue
		}
		info, err := f.fileInfo(e)
		if err != nil {
			return nil, classify("stat", e.Name(), err)
		}
		if info == nil {
			continue
		}
		out = append(out, models.FileMeta{
			Name:      e.Name(),
			Slug:      slug,
			UpdatedAt: info.ModTime(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// fileInfo returns the info of a regular file entry, following symlinks so
// that a linked file is listed exactly when Read would serve it. Anything
// else, including a dangling link, yields nil.
func (f *FS) fileInfo(e fs.DirEntry) (fs.FileInfo, error) {
	var info fs.FileInfo
	var err error
	switch {
	case e.Type().IsRegular():
		info, err = e.Info()
	case e.Type()&fs.ModeSymlink != 0:
		info, err = os.Stat(filepath.Join(f.root, e.Name()))
	default:
		return nil, nil
	}
	if err != nil {
		// Removed since ReadDir, or a dangling link.
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, nil
	}
	return info, nil
}

// Read returns the raw bytes and metadata of the file for slug.
func (f *FS) Read(slug string) (*File, error) {
	abs, err := f.slugPath(slug)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, classify("stat", slug, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("storage: %s is a directory: %w", slug, apperr.ErrNotFound)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, classify("read", slug, err)
	}
	return &File{
		FileMeta: models.FileMeta{
			Name:      filepath.Base(abs),
			Slug:      slug,
			Checksum:  checksum.Sum(data),
			UpdatedAt: info.ModTime(),
		},
		Data: data,
	}, nil
}

func classify(op, name string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage: %s %s: %w: %w", op, name, apperr.ErrNotFound, err)
	}
	return fmt.Errorf("storage: %s %s: %w: %w", op, name, apperr.ErrIO, err)
}
