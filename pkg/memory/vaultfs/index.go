package vaultfs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/mnemohq/mnemo/pkg/memory"
)

const (
	// indexFile is the metadata index filename at the vault root. The
	// leading dot keeps it out of listings, which exclude hidden names.
	indexFile = ".index.json"

	// indexVersion is the current on-disk index format version.
	indexVersion = 1
)

// ErrCorruptIndex is returned by the index loader when the index file exists
// but cannot be parsed. The store recovers by starting from an empty index;
// counters are lost but content is unaffected.
var ErrCorruptIndex = errors.New("corrupt metadata index")

// indexEnvelope is the on-disk form of the metadata index: a versioned JSON
// object keyed by relative path (category/name).
type indexEnvelope struct {
	Version int                         `json:"version"`
	Entries map[string]*memory.Metadata `json:"entries"`
}

// fileIndex is the metadata index repository: one in-memory copy of the
// entry map, persisted as a versioned JSON file. All access goes through its
// mutex, and Save writes atomically (temp file + rename), so concurrent
// callers within one process never observe a torn index.
type fileIndex struct {
	path string

	mu      sync.RWMutex
	entries map[string]*memory.Metadata
}

func newFileIndex(path string) *fileIndex {
	return &fileIndex{
		path:    path,
		entries: make(map[string]*memory.Metadata),
	}
}

// Load replaces the in-memory entries with the persisted index. A missing
// file is the expected state for a brand-new vault and loads as empty.
// A file that fails to parse, or that carries an unknown format version,
// returns ErrCorruptIndex.
func (ix *fileIndex) Load() error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.entries = make(map[string]*memory.Metadata)

	data, err := os.ReadFile(ix.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading metadata index: %w", err)
	}

	envelope := indexEnvelope{}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptIndex, err)
	}

	if envelope.Version != indexVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)",
			ErrCorruptIndex, envelope.Version, indexVersion)
	}

	if envelope.Entries != nil {
		ix.entries = envelope.Entries
	}

	return nil
}

// Save persists the index atomically: marshal to a uniquely-named temp file
// in the same directory, then rename over the index path. Concurrent savers
// race on the rename and the last one wins, never a partial file.
func (ix *fileIndex) Save() error {
	ix.mu.RLock()
	envelope := indexEnvelope{
		Version: indexVersion,
		Entries: ix.entries,
	}

	data, err := json.MarshalIndent(envelope, "", "  ")
	ix.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("marshaling metadata index: %w", err)
	}

	tmp := filepath.Join(filepath.Dir(ix.path), indexFile+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing metadata index: %w", err)
	}

	if err := os.Rename(tmp, ix.path); err != nil {
		return fmt.Errorf("replacing metadata index: %w", err)
	}

	return nil
}

// Get returns a copy of the record for key, so callers cannot mutate the
// index behind its lock.
func (ix *fileIndex) Get(key string) (*memory.Metadata, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	md, ok := ix.entries[key]
	if !ok {
		return nil, false
	}

	out := *md
	return &out, true
}

// Put stores a copy of md under key.
func (ix *fileIndex) Put(key string, md *memory.Metadata) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	entry := *md
	ix.entries[key] = &entry
}

// Delete removes the record for key. Deleting a missing key is a no-op.
func (ix *fileIndex) Delete(key string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	delete(ix.entries, key)
}

// All returns copies of every record in the index, in map order.
func (ix *fileIndex) All() []*memory.Metadata {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	out := make([]*memory.Metadata, 0, len(ix.entries))
	for _, md := range ix.entries {
		entry := *md
		out = append(out, &entry)
	}

	return out
}

// Reset discards all in-memory entries without touching the file.
func (ix *fileIndex) Reset() {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.entries = make(map[string]*memory.Metadata)
}
