package search

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/blevesearch/bleve/v2"
)

const (
	indexDirName    = "products.bleve"
	versionFileName = "products.version"
	putBatchSize    = 200

	// mappingVersion changes whenever buildIndexMapping does; an on-disk
	// index stamped with another version is discarded at Open.
	mappingVersion = "1"
)

// Index is the product search index. Methods are safe for concurrent use;
// Reset takes the write lock while it swaps the underlying handle.
type Index struct {
	mu     sync.RWMutex
	bleve  bleve.Index
	path   string
	logger *slog.Logger
}

// Options configures Open.
type Options struct {
	// DataPath is the directory holding the index. Empty keeps it in memory.
	DataPath string
	Logger   *slog.Logger
}

// Open opens the product index under opts.DataPath, creating it when missing.
// Unreadable or outdated indexes are recreated empty; callers reindex the catalog.
func Open(opts Options) (*Index, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if opts.DataPath == "" {
		b, err := bleve.NewMemOnly(buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("create memory index: %w", err)
		}
		logger.Info("product index kept in memory")
		return &Index{bleve: b, logger: logger}, nil
	}

	if err := os.MkdirAll(opts.DataPath, 0o755); err != nil {
		return nil, fmt.Errorf("create index dir: %w", err)
	}
	path := filepath.Join(opts.DataPath, indexDirName)
	stamp := filepath.Join(opts.DataPath, versionFileName)

	if b, ok := reuse(path, stamp, logger); ok {
		return &Index{bleve: b, path: path, logger: logger}, nil
	}

	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("remove stale index: %w", err)
	}
	b, err := bleve.New(path, buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}
	if err := os.WriteFile(stamp, []byte(mappingVersion), 0o644); err != nil {
		logger.Warn("could not stamp index version", slog.String("error", err.Error()))
	}
	logger.Info("created product index", slog.String("path", path), slog.String("mapping_version", mappingVersion))

	return &Index{bleve: b, path: path, logger: logger}, nil
}

// reuse opens an existing index when its stamp matches the current mapping.
func reuse(path, stamp string, logger *slog.Logger) (bleve.Index, bool) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, false
	}

	got, err := os.ReadFile(stamp)
	if err != nil || string(got) != mappingVersion {
		logger.Info("product index mapping changed, recreating",
			slog.String("found", string(got)),
			slog.String("want", mappingVersion))
		return nil, false
	}

	b, err := bleve.Open(path)
	if err != nil {
		logger.Warn("product index unreadable, recreating",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil, false
	}
	logger.Info("opened product index", slog.String("path", path))
	return b, true
}

// Close releases the index.
func (x *Index) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.bleve.Close()
}

// Put indexes one product, replacing its previous document.
func (x *Index) Put(doc *ProductDocument) error {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.bleve.Index(doc.ID, doc.ToMap())
}

// PutAll indexes docs in batches.
func (x *Index) PutAll(docs []*ProductDocument) error {
	x.mu.RLock()
	defer x.mu.RUnlock()

	for start := 0; start < len(docs); start += putBatchSize {
		end := min(start+putBatchSize, len(docs))
		batch := x.bleve.NewBatch()
		for _, doc := range docs[start:end] {
			if err := batch.Index(doc.ID, doc.ToMap()); err != nil {
				return fmt.Errorf("batch %s: %w", doc.ID, err)
			}
		}
		if err := x.bleve.Batch(batch); err != nil {
			return fmt.Errorf("commit products %d-%d: %w", start, end, err)
		}
	}
	return nil
}

// Delete removes a product document. Unknown ids are not an error.
func (x *Index) Delete(productID string) error {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.bleve.Delete(productID)
}

// Count returns how many products are indexed.
func (x *Index) Count() (uint64, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.bleve.DocCount()
}

// Reset empties the index. Searches block until it returns.
func (x *Index) Reset() error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if err := x.bleve.Close(); err != nil {
		return fmt.Errorf("close index: %w", err)
	}

	var (
		b   bleve.Index
		err error
	)
	if x.path == "" {
		b, err = bleve.NewMemOnly(buildIndexMapping())
	} else {
		if err = os.RemoveAll(x.path); err != nil {
			return fmt.Errorf("remove index: %w", err)
		}
		b, err = bleve.New(x.path, buildIndexMapping())
	}
	if err != nil {
		return fmt.Errorf("recreate index: %w", err)
	}

	x.bleve = b
	x.logger.Info("product index reset", slog.String("path", x.path))
	return nil
}
