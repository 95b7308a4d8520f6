package vaultfs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mnemohq/mnemo/pkg/memory"
)

// These specs live inside the package to cover the index repository
// directly; the exported surface is covered in vaultfs_test.go.
var _ = Describe("fileIndex", func() {
	var dir string
	var ix *fileIndex

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "index-test-*")
		Expect(err).NotTo(HaveOccurred())

		ix = newFileIndex(filepath.Join(dir, indexFile))
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	newMetadata := func(path string) *memory.Metadata {
		return &memory.Metadata{
			RelativePath: path,
			ContentHash:  "abc123",
			LastUpdated:  time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
			AccessCount:  2,
			Size:         42,
		}
	}

	Describe("Load", func() {
		It("loads empty when the file does not exist", func() {
			Expect(ix.Load()).To(Succeed())
			Expect(ix.All()).To(BeEmpty())
		})

		It("round-trips entries through Save", func() {
			ix.Put("system/a.md", newMetadata("system/a.md"))
			Expect(ix.Save()).To(Succeed())

			fresh := newFileIndex(ix.path)
			Expect(fresh.Load()).To(Succeed())

			md, ok := fresh.Get("system/a.md")
			Expect(ok).To(BeTrue())
			Expect(md).To(Equal(newMetadata("system/a.md")))
		})

		It("returns ErrCorruptIndex for unparseable JSON", func() {
			Expect(os.WriteFile(ix.path, []byte("not json"), 0o600)).To(Succeed())
			Expect(ix.Load()).To(MatchError(ErrCorruptIndex))
		})

		It("returns ErrCorruptIndex for an unsupported version", func() {
			Expect(os.WriteFile(ix.path, []byte(`{"version": 7, "entries": {}}`), 0o600)).To(Succeed())
			Expect(ix.Load()).To(MatchError(ErrCorruptIndex))
		})

		It("discards stale in-memory entries on reload", func() {
			ix.Put("system/stale.md", newMetadata("system/stale.md"))
			Expect(ix.Load()).To(Succeed())
			Expect(ix.All()).To(BeEmpty())
		})
	})

	Describe("Save", func() {
		It("writes a versioned envelope with RFC 3339 timestamps", func() {
			ix.Put("system/a.md", newMetadata("system/a.md"))
			Expect(ix.Save()).To(Succeed())

			data, err := os.ReadFile(ix.path)
			Expect(err).NotTo(HaveOccurred())

			var raw map[string]json.RawMessage
			Expect(json.Unmarshal(data, &raw)).To(Succeed())
			Expect(string(raw["version"])).To(Equal("1"))
			Expect(string(raw["entries"])).To(ContainSubstring(`"2026-08-01T12:00:00Z"`))
		})

		It("leaves no temp files behind", func() {
			ix.Put("system/a.md", newMetadata("system/a.md"))
			Expect(ix.Save()).To(Succeed())

			dirents, err := os.ReadDir(dir)
			Expect(err).NotTo(HaveOccurred())
			Expect(dirents).To(HaveLen(1))
			Expect(dirents[0].Name()).To(Equal(indexFile))
		})
	})

	Describe("Get and Put", func() {
		It("returns copies so callers cannot mutate the index", func() {
			ix.Put("system/a.md", newMetadata("system/a.md"))

			md, ok := ix.Get("system/a.md")
			Expect(ok).To(BeTrue())

			md.AccessCount = 999

			again, ok := ix.Get("system/a.md")
			Expect(ok).To(BeTrue())
			Expect(again.AccessCount).To(Equal(2))
		})

		It("misses unknown keys", func() {
			_, ok := ix.Get("nope")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("Delete", func() {
		It("removes a record and tolerates missing keys", func() {
			ix.Put("system/a.md", newMetadata("system/a.md"))
			ix.Delete("system/a.md")
			ix.Delete("system/a.md")

			_, ok := ix.Get("system/a.md")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("integration with the store", func() {
		It("keeps the on-disk index in sync after every mutation", func() {
			ctx := context.Background()

			s, err := New(Config{Root: filepath.Join(dir, "vault")})
			Expect(err).NotTo(HaveOccurred())

			_, err = s.Store(ctx, "a.md", "hello", "")
			Expect(err).NotTo(HaveOccurred())

			fresh := newFileIndex(filepath.Join(dir, "vault", indexFile))
			Expect(fresh.Load()).To(Succeed())

			md, ok := fresh.Get("system/a.md")
			Expect(ok).To(BeTrue())
			Expect(md.Size).To(Equal(int64(5)))
			Expect(md.AccessCount).To(BeZero())
		})
	})
})
