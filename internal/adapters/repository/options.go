package repository

import (
	"io/fs"

	"github.com/okian/blackjack/internal/domain/strategy"
	"github.com/okian/blackjack/pkg/logger"
)

// Option applies a configuration option to the FileStore.
type Option func(*FileStore)

// WithFilePermission sets the mode of written summary files.
func WithFilePermission(mode fs.FileMode) Option {
	return func(s *FileStore) {
		if mode != 0 {
			s.filePerm = mode
		}
	}
}

// WithDirPermission sets the mode used when creating the directory.
func WithDirPermission(mode fs.FileMode) Option {
	return func(s *FileStore) {
		if mode != 0 {
			s.dirPerm = mode
		}
	}
}

// LoadOption configures LoadRegistry.
type LoadOption func(*loadConfig)

type loadConfig struct {
	expected []string
	catalog  *strategy.Catalog
	logger   logger.Logger
}

// WithExpectedKeys fixes the closed set of strategies to load, in order.
// Without it every stored summary is loaded in the store's List order.
func WithExpectedKeys(keys []string) LoadOption {
	return func(c *loadConfig) {
		if len(keys) > 0 {
			c.expected = append([]string(nil), keys...)
		}
	}
}

// WithCatalog sets the catalog used to fill missing names and descriptions.
func WithCatalog(catalog *strategy.Catalog) LoadOption {
	return func(c *loadConfig) {
		if catalog != nil {
			c.catalog = catalog
		}
	}
}

// WithLogger sets the logger used while loading.
func WithLogger(l logger.Logger) LoadOption {
	return func(c *loadConfig) {
		if l != nil {
			c.logger = l
		}
	}
}
