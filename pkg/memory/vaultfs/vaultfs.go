// Package vaultfs implements memory.Store on the local filesystem.
//
// Layout: a root directory with one subdirectory per category and a single
// hidden metadata index file at the root. Content on disk is the source of
// truth for memory bodies; the index is the source of truth for statistics,
// and it is write-through — every mutating operation persists the index
// before returning.
//
// The store is designed for a single logical session issuing possibly-many
// in-flight operations: one mutex serializes mutating calls, so "at most one
// writer per entry" is an invariant, not an accident of low contention.
// Multiple independent processes sharing a root are not arbitrated beyond
// what the filesystem provides.
package vaultfs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mnemohq/mnemo/pkg/digest"
	"github.com/mnemohq/mnemo/pkg/memory"
)

const (
	// DefaultCategory receives entries when operations omit a category.
	DefaultCategory = "system"

	// mostAccessedLimit caps the Stats most-accessed ranking.
	mostAccessedLimit = 10
)

// DefaultCategories are the directories guaranteed to exist after
// initialization. Collaborators may still store under ad hoc categories;
// those directories are created on first write.
var DefaultCategories = []string{DefaultCategory, "personalities", "projects"}

// Config holds configuration for the filesystem store.
type Config struct {
	// Root is the vault root directory. Created if missing.
	Root string

	// DefaultCategory receives entries when operations omit a category.
	// Defaults to "system".
	DefaultCategory string

	// Categories are the directories created at initialization. The
	// default category is always included. Defaults to DefaultCategories.
	Categories []string

	// Logger receives debug and warning logs. Defaults to a discard
	// logger; logging is a collaborator concern, never load-bearing.
	Logger *slog.Logger
}

// Store implements memory.Store over a root directory.
type Store struct {
	root            string
	defaultCategory string
	categories      []string
	logger          *slog.Logger

	// mu serializes operations that touch the index. Retrieve takes the
	// write side too: reads mutate access counts.
	mu sync.RWMutex

	index *fileIndex
}

var _ memory.Store = (*Store)(nil)

// New creates a filesystem store rooted at cfg.Root, ensuring the root and
// category directories exist and loading the persisted metadata index.
// A missing index file is the expected state for a brand-new root; a corrupt
// one degrades to an empty index with a warning rather than failing.
func New(cfg Config) (*Store, error) {
	if cfg.Root == "" {
		return nil, errors.New("vault root is required")
	}

	defaultCategory := cfg.DefaultCategory
	if defaultCategory == "" {
		defaultCategory = DefaultCategory
	}

	categories := cfg.Categories
	if len(categories) == 0 {
		categories = DefaultCategories
	}
	if !slices.Contains(categories, defaultCategory) {
		categories = append([]string{defaultCategory}, categories...)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Store{
		root:            cfg.Root,
		defaultCategory: defaultCategory,
		categories:      slices.Clone(categories),
		logger:          logger,
		index:           newFileIndex(filepath.Join(cfg.Root, indexFile)),
	}

	if err := s.initRoot(); err != nil {
		return nil, err
	}

	if err := s.index.Load(); err != nil {
		if !errors.Is(err, ErrCorruptIndex) {
			return nil, err
		}
		// Counters are lost but content is untouched; records are
		// re-synthesized on the next read of each file.
		s.logger.Warn("metadata index is corrupt, starting empty",
			"path", filepath.Join(s.root, indexFile),
			"error", err,
		)
		s.index.Reset()
	}

	return s, nil
}

// Root returns the vault root directory.
func (s *Store) Root() string {
	return s.root
}

// Categories returns the configured category list, default category first.
func (s *Store) Categories() []string {
	return slices.Clone(s.categories)
}

// initRoot creates the vault root and the configured category directories.
func (s *Store) initRoot() error {
	for _, category := range s.categories {
		dir := filepath.Join(s.root, filepath.FromSlash(category))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating category directory %s: %w", dir, err)
		}
	}

	return nil
}

// Store writes content under root/category/name, fully replacing any prior
// content, and persists the updated metadata index before returning.
func (s *Store) Store(_ context.Context, name, content, category string) (*memory.Metadata, error) {
	category, err := s.resolveCategory(category)
	if err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.write(name, content, category)
}

// Retrieve reads a memory's content, bumps its access count, refreshes its
// last-updated time, and persists the index. The returned metadata snapshot
// already reflects the read.
func (s *Store) Retrieve(_ context.Context, name, category string) (*memory.Entry, error) {
	category, err := s.resolveCategory(category)
	if err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.read(name, category)
}

// Update behaves exactly like Store, guarded by an existence probe.
func (s *Store) Update(_ context.Context, name, content, category string) (*memory.Metadata, error) {
	category, err := s.resolveCategory(category)
	if err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.probe(name, category); err != nil {
		return nil, err
	}

	return s.write(name, content, category)
}

// Append retrieves the current content (which counts as a read), then writes
// old + "\n" + extra in place. The resulting access count is zero.
func (s *Store) Append(_ context.Context, name, extra, category string) (*memory.Metadata, error) {
	category, err := s.resolveCategory(category)
	if err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.read(name, category)
	if err != nil {
		return nil, err
	}

	return s.write(name, entry.Content+"\n"+extra, category)
}

// Remove deletes the memory's file, drops its metadata record, and persists
// the index.
func (s *Store) Remove(_ context.Context, name, category string) error {
	category, err := s.resolveCategory(category)
	if err != nil {
		return err
	}
	if err := validateName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.probe(name, category); err != nil {
		return err
	}

	if err := os.Remove(s.entryPath(name, category)); err != nil {
		return fmt.Errorf("removing memory: %w", err)
	}

	key := entryKey(name, category)
	s.index.Delete(key)

	if err := s.index.Save(); err != nil {
		return fmt.Errorf("persisting metadata index: %w", err)
	}

	s.logger.Debug("memory removed", "key", key)

	return nil
}

// List returns the metadata of entries physically present in one category
// directory, most recently touched first. Hidden names (leading dot) are
// excluded, and so are files without an index record: the index is
// authoritative for listings (an untracked file remains retrievable, which
// synthesizes a fresh record).
func (s *Store) List(_ context.Context, category string) ([]*memory.Metadata, error) {
	category, err := s.resolveCategory(category)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	dir := filepath.Join(s.root, filepath.FromSlash(category))
	dirents, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading category directory: %w", err)
	}

	var out []*memory.Metadata
	for _, de := range dirents {
		if de.IsDir() || strings.HasPrefix(de.Name(), ".") {
			continue
		}

		md, ok := s.index.Get(entryKey(de.Name(), category))
		if !ok {
			continue
		}

		out = append(out, md)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].LastUpdated.Equal(out[j].LastUpdated) {
			return out[i].LastUpdated.After(out[j].LastUpdated)
		}
		// Ties break on path so the order is deterministic.
		return out[i].RelativePath < out[j].RelativePath
	})

	return out, nil
}

// Stats aggregates the in-memory metadata index. Categories reports the
// configured list, not one derived from directory contents.
func (s *Store) Stats(_ context.Context) (*memory.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.index.All()

	stats := &memory.Stats{
		Categories: slices.Clone(s.categories),
	}

	for _, md := range all {
		stats.TotalFiles++
		stats.TotalSize += md.Size
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].AccessCount != all[j].AccessCount {
			return all[i].AccessCount > all[j].AccessCount
		}
		return all[i].RelativePath < all[j].RelativePath
	})

	if len(all) > mostAccessedLimit {
		all = all[:mostAccessedLimit]
	}
	stats.MostAccessed = all

	return stats, nil
}

// Clear recursively deletes the vault root, then re-runs initialization:
// directories recreated, in-memory index empty, no index file until the next
// mutation. A cleared vault is indistinguishable from a brand-new one.
func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.RemoveAll(s.root); err != nil {
		return fmt.Errorf("clearing vault: %w", err)
	}

	s.index.Reset()

	if err := s.initRoot(); err != nil {
		return err
	}

	s.logger.Debug("vault cleared", "root", s.root)

	return nil
}

// write replaces the content and metadata for one entry. Callers hold mu and
// have already validated the name and resolved the category.
func (s *Store) write(name, content, category string) (*memory.Metadata, error) {
	dir := filepath.Join(s.root, filepath.FromSlash(category))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating category directory: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		return nil, fmt.Errorf("writing memory: %w", err)
	}

	key := entryKey(name, category)
	md := &memory.Metadata{
		RelativePath: key,
		ContentHash:  digest.Content(content),
		LastUpdated:  time.Now().UTC(),
		AccessCount:  0,
		Size:         int64(len(content)),
	}
	s.index.Put(key, md)

	if err := s.index.Save(); err != nil {
		return nil, fmt.Errorf("persisting metadata index: %w", err)
	}

	s.logger.Debug("memory stored", "key", key, "size", md.Size)

	return md, nil
}

// read returns an entry's content plus a metadata snapshot reflecting the
// read. A file present on disk without an index record gets a record
// synthesized from its current content, reported with access count one.
// Callers hold mu.
func (s *Store) read(name, category string) (*memory.Entry, error) {
	data, err := os.ReadFile(s.entryPath(name, category))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, memory.ErrNotFound{Name: name, Category: category}
		}
		return nil, fmt.Errorf("reading memory: %w", err)
	}
	content := string(data)

	key := entryKey(name, category)
	md, ok := s.index.Get(key)
	if !ok {
		md = &memory.Metadata{
			RelativePath: key,
			ContentHash:  digest.Content(content),
			Size:         int64(len(content)),
		}
	}

	md.AccessCount++
	md.LastUpdated = time.Now().UTC()
	s.index.Put(key, md)

	if err := s.index.Save(); err != nil {
		return nil, fmt.Errorf("persisting metadata index: %w", err)
	}

	s.logger.Debug("memory retrieved", "key", key, "access_count", md.AccessCount)

	return &memory.Entry{Content: content, Metadata: *md}, nil
}

// probe checks that an entry's file exists, translating absence into
// ErrNotFound. Callers hold mu.
func (s *Store) probe(name, category string) error {
	if _, err := os.Stat(s.entryPath(name, category)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return memory.ErrNotFound{Name: name, Category: category}
		}
		return fmt.Errorf("probing memory: %w", err)
	}

	return nil
}

// entryPath returns the absolute path of an entry's file.
func (s *Store) entryPath(name, category string) string {
	return filepath.Join(s.root, filepath.FromSlash(category), name)
}

// entryKey returns the index key for an entry: its slash-separated path
// relative to the vault root. Keying on category + name keeps filenames
// shared across categories from colliding.
func entryKey(name, category string) string {
	return path.Join(category, name)
}

// resolveCategory substitutes the default category for an empty one and
// rejects categories that could escape the vault root. Categories may
// contain sub-segments ("personalities/technical"); they are path prefixes,
// not an enum.
func (s *Store) resolveCategory(category string) (string, error) {
	if category == "" {
		return s.defaultCategory, nil
	}

	category = strings.Trim(category, "/")
	if category == "" || filepath.IsAbs(category) {
		return "", fmt.Errorf("invalid category %q", category)
	}

	for _, segment := range strings.Split(category, "/") {
		if segment == "" || segment == "." || segment == ".." {
			return "", fmt.Errorf("invalid category %q", category)
		}
	}

	return category, nil
}

// validateName requires a plain, non-hidden-safe filename: no separators and
// no dot segments, otherwise the composite index key would be ambiguous.
// Anything else passes through verbatim; names are expected to already be
// filesystem-safe.
func validateName(name string) error {
	if name == "" {
		return errors.New("memory name is required")
	}

	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("invalid memory name %q: must be a plain filename", name)
	}

	return nil
}
