package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/okian/blackjack/internal/domain/strategy"
)

// File permission constants.
const (
	defaultDirPermission  = 0o750
	defaultFilePermission = 0o644
)

// FileStore keeps one indented JSON file per strategy, named
// "{key}_summary.json", in a single directory.
type FileStore struct {
	dir      string
	dirPerm  fs.FileMode
	filePerm fs.FileMode
}

// NewFileStore creates a store rooted at dir. The directory is created on
// first Save.
func NewFileStore(dir string, opts ...Option) *FileStore {
	s := &FileStore{
		dir:      dir,
		dirPerm:  defaultDirPermission,
		filePerm: defaultFilePermission,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the directory backing the store.
func (s *FileStore) Dir() string { return s.dir }

// Path returns the file a key is stored in.
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.dir, strategy.SummaryFileName(key))
}

// Save writes the summary atomically: a temp file in the same directory is
// renamed over the target.
func (s *FileStore) Save(ctx context.Context, sum strategy.Summary) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("save summary: %w", err)
	}
	if err := strategy.ValidateKey(sum.Key); err != nil {
		return fmt.Errorf("save summary: %w", err)
	}
	if err := sum.Validate(); err != nil {
		return fmt.Errorf("save summary: %w", err)
	}
	if err := os.MkdirAll(s.dir, s.dirPerm); err != nil {
		return fmt.Errorf("%w: %w", ErrDataDir, err)
	}

	data, err := json.MarshalIndent(sum, "", "  ")
	if err != nil {
		return fmt.Errorf("encode summary %s: %w", sum.Key, err)
	}

	tmp, err := os.CreateTemp(s.dir, ".summary-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDataDir, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write summary %s: %w", sum.Key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write summary %s: %w", sum.Key, err)
	}
	if err := os.Chmod(tmpName, s.filePerm); err != nil {
		return fmt.Errorf("write summary %s: %w", sum.Key, err)
	}
	if err := os.Rename(tmpName, s.Path(sum.Key)); err != nil {
		return fmt.Errorf("write summary %s: %w", sum.Key, err)
	}
	return nil
}

// Load reads the summary stored for key. A file whose embedded key
// disagrees with its name is treated as corrupt.
func (s *FileStore) Load(ctx context.Context, key string) (strategy.Summary, error) {
	if err := ctx.Err(); err != nil {
		return strategy.Summary{}, fmt.Errorf("load summary: %w", err)
	}
	if err := strategy.ValidateKey(key); err != nil {
		return strategy.Summary{}, fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return strategy.Summary{}, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return strategy.Summary{}, fmt.Errorf("read summary %s: %w", key, err)
	}

	var sum strategy.Summary
	if err := json.Unmarshal(data, &sum); err != nil {
		return strategy.Summary{}, fmt.Errorf("%w: %s: %w", ErrCorruptSummary, key, err)
	}
	switch sum.Key {
	case "":
		sum.Key = key
	case key:
	default:
		return strategy.Summary{}, fmt.Errorf("%w: %s: file holds key %q", ErrCorruptSummary, key, sum.Key)
	}
	return sum, nil
}

// List returns stored keys in lexical file-name order. Files that do not
// follow the naming convention are ignored.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list summaries: %w", err)
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataDir, err)
	}
	var keys []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		key, err := strategy.KeyFromSummaryFile(e.Name())
		if err != nil {
			continue
		}
		keys = append(keys, key)
	}
	return keys, nil
}
