// Package storage persists the raw bytes of supporting documents on the
// local filesystem. Document metadata lives in the database; the store
// only deals in relative paths under its root directory.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	ledgerapp "github.com/ongcompta/backend/internal/application/ledger"
	"github.com/ongcompta/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Ensure FilesystemDocumentStore implements DocumentStore
var _ ledgerapp.DocumentStore = (*FilesystemDocumentStore)(nil)

// FilesystemDocumentStore writes each document under
// <root>/<entry-id>/<uuid>_<sanitized-filename>. The random prefix keeps
// two uploads with the same name from clobbering each other.
type FilesystemDocumentStore struct {
	root   string
	logger *zap.Logger
}

// FilesystemOption is a functional option for FilesystemDocumentStore
type FilesystemOption func(*FilesystemDocumentStore)

// WithLogger sets a custom logger for the store
func WithLogger(logger *zap.Logger) FilesystemOption {
	return func(s *FilesystemDocumentStore) {
		s.logger = logger
	}
}

// NewFilesystemDocumentStore creates the store and its root directory
func NewFilesystemDocumentStore(root string, opts ...FilesystemOption) (*FilesystemDocumentStore, error) {
	if root == "" {
		return nil, errors.New("documents directory is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("invalid documents directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create documents directory: %w", err)
	}

	store := &FilesystemDocumentStore{
		root:   abs,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(store)
	}
	return store, nil
}

// Put stores the content and returns the path relative to the root
func (s *FilesystemDocumentStore) Put(ctx context.Context, entryID uuid.UUID, filename string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := filepath.Join(s.root, entryID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create entry directory: %w", err)
	}

	name := uuid.New().String() + "_" + sanitizeFilename(filename)
	target := filepath.Join(dir, name)

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create document file: %w", err)
	}
	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(target)
		return "", fmt.Errorf("failed to write document: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(target)
		return "", fmt.Errorf("failed to close document: %w", err)
	}

	relative := filepath.ToSlash(filepath.Join(entryID.String(), name))
	s.logger.Debug("Stored supporting document",
		zap.String("entry_id", entryID.String()),
		zap.String("path", relative))
	return relative, nil
}

// Get opens the content stored at path
func (s *FilesystemDocumentStore) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	target, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(target)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	return f, nil
}

// Remove deletes the content stored at path. Removing a path that is
// already gone is not an error.
func (s *FilesystemDocumentStore) Remove(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove document: %w", err)
	}
	// Drop the per-entry directory once it is empty; ignore failures
	// since another upload may have raced in.
	os.Remove(filepath.Dir(target))
	return nil
}

// resolve joins path onto the root and rejects escapes from it
func (s *FilesystemDocumentStore) resolve(path string) (string, error) {
	if path == "" {
		return "", errors.New("document path is required")
	}
	target := filepath.Join(s.root, filepath.FromSlash(path))
	if target != s.root && !strings.HasPrefix(target, s.root+string(filepath.Separator)) {
		return "", errors.New("document path escapes storage root")
	}
	return target, nil
}

// sanitizeFilename keeps only characters safe for a filesystem name
func sanitizeFilename(filename string) string {
	base := filepath.Base(strings.TrimSpace(filename))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "document"
	}
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
