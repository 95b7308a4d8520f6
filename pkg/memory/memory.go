// Package memory defines the contract for the mnemo vault: named text
// memories grouped under category subpaths, with per-entry metadata that
// survives process restarts.
//
// The [Store] interface is intentionally small: eight synchronous operations
// over a vault root. Implementations live in subpackages (vaultfs is the
// filesystem-backed store); callers hold a Store and never touch the on-disk
// layout directly.
//
// Categories are path segments under the vault root, not an enum: callers
// may use nested sub-paths like "personalities/technical" as a category
// string. An empty category resolves to the store's configured default.
package memory

import (
	"context"
	"time"
)

// Metadata describes one stored memory. The metadata index is the source of
// truth for statistics; the filesystem is the source of truth for content.
type Metadata struct {
	// RelativePath is the entry's path relative to the vault root
	// (category + "/" + name). It doubles as the index key, so two
	// categories can share a filename without colliding.
	RelativePath string `json:"relative_path"`

	// ContentHash is the hex-encoded SHA-256 of the content at last write.
	ContentHash string `json:"content_hash"`

	// LastUpdated is refreshed on every write and every read.
	LastUpdated time.Time `json:"last_updated"`

	// AccessCount increments on every successful read and resets to zero
	// on every write.
	AccessCount int `json:"access_count"`

	// Size is the byte length of the content at last write.
	Size int64 `json:"size"`
}

// Entry pairs a memory's content with the metadata snapshot taken at read
// time. The snapshot already reflects the read (access count bumped).
type Entry struct {
	Content  string   `json:"content"`
	Metadata Metadata `json:"metadata"`
}

// Stats summarizes the vault from its metadata index. TotalFiles and
// TotalSize aggregate over the index, not a disk re-scan; Categories is the
// configured category list, not one derived from directory contents.
type Stats struct {
	TotalFiles   int         `json:"total_files"`
	TotalSize    int64       `json:"total_size"`
	Categories   []string    `json:"categories"`
	MostAccessed []*Metadata `json:"most_accessed"`
}

// Store is the vault contract consumed by higher-level collaborators.
// Every operation runs to completion, including metadata persistence,
// before returning. An empty category means the default category.
type Store interface {
	// Store writes content under root/category/name, fully replacing any
	// prior content, and returns the fresh metadata (access count zero).
	Store(ctx context.Context, name, content, category string) (*Metadata, error)

	// Retrieve reads a memory's content, bumps its access count, and
	// refreshes its last-updated time. Returns ErrNotFound when no file
	// exists for the name.
	Retrieve(ctx context.Context, name, category string) (*Entry, error)

	// Update behaves exactly like Store but requires the memory to
	// already exist; it returns ErrNotFound otherwise.
	Update(ctx context.Context, name, content, category string) (*Metadata, error)

	// Append retrieves the current content (which counts as a read),
	// concatenates a newline plus extra, and updates in place. The
	// resulting access count is zero.
	Append(ctx context.Context, name, extra, category string) (*Metadata, error)

	// Remove deletes the memory's file and its metadata record.
	// Returns ErrNotFound when no file exists for the name.
	Remove(ctx context.Context, name, category string) error

	// List returns the metadata of entries in one category, most recently
	// touched first. Hidden files and files without an index record are
	// excluded.
	List(ctx context.Context, category string) ([]*Metadata, error)

	// Stats aggregates the metadata index.
	Stats(ctx context.Context) (*Stats, error)

	// Clear deletes the entire vault root and re-initializes it.
	// Intended for test teardown, not normal operation.
	Clear(ctx context.Context) error
}
