package database

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"leave-api/internal/model"
)

// FileStore keeps the document in a single JSON file
type FileStore struct {
	path   string
	logger *slog.Logger
}

// NewFileStore returns a store backed by the JSON file at path
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

// Path returns the backing file location
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the document. A missing file, or one that is not a JSON object,
// is replaced by an empty document which is written back immediately; the old
// content is lost. Well-formed JSON whose fields do not fit the document is an
// error and the file is left untouched.
func (s *FileStore) Load(ctx context.Context) (*model.Document, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return s.reset(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}

	trimmed := bytes.TrimSpace(raw)
	if !json.Valid(trimmed) || len(trimmed) == 0 || trimmed[0] != '{' {
		s.logger.Warn("store file is corrupt, starting from an empty document",
			slog.String("path", s.path))
		return s.reset(ctx)
	}

	var doc model.Document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode store file %s: %w", s.path, err)
	}
	doc.Normalize()
	return &doc, nil
}

// Save serializes the document to a temp file and renames it over the target
func (s *FileStore) Save(ctx context.Context, doc *model.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store document: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp store file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op once the rename succeeded
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close store file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}

func (s *FileStore) reset(ctx context.Context) (*model.Document, error) {
	doc := model.NewDocument()
	if err := s.Save(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}
