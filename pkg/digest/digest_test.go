package digest_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mnemohq/mnemo/pkg/digest"
)

var _ = Describe("Content", func() {
	It("returns the hex SHA-256 of the input", func() {
		// sha256("hello") is a well-known vector.
		Expect(digest.Content("hello")).To(Equal(
			"2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		))
	})

	It("returns the empty-input digest for an empty string", func() {
		Expect(digest.Content("")).To(Equal(
			"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		))
	})

	It("is deterministic", func() {
		Expect(digest.Content("same input")).To(Equal(digest.Content("same input")))
	})

	It("differs for different content", func() {
		Expect(digest.Content("a")).NotTo(Equal(digest.Content("b")))
	})

	It("is always 64 hex characters regardless of input size", func() {
		Expect(digest.Content("x")).To(HaveLen(64))
		Expect(digest.Content(string(make([]byte, 1<<20)))).To(HaveLen(64))
	})
})
