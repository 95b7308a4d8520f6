package mnemocmder_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	mnemocmder "github.com/mnemohq/mnemo/cmd/mnemo"
)

var _ = Describe("NewMnemoCmd", func() {
	It("creates a command with the correct use string", func() {
		cmd := mnemocmder.NewMnemoCmd()
		Expect(cmd.Use).To(Equal("mnemo"))
	})

	It("registers every vault subcommand", func() {
		cmd := mnemocmder.NewMnemoCmd()
		cmds := cmd.Commands()
		subcommands := make([]string, 0, len(cmds))
		for _, sub := range cmds {
			subcommands = append(subcommands, sub.Name())
		}
		Expect(subcommands).To(ContainElements(
			"store", "get", "append", "rm", "list", "stats", "clear",
			"browse", "watch", "config", "version",
		))
	})

	It("has the global debug and vault flags", func() {
		cmd := mnemocmder.NewMnemoCmd()
		Expect(cmd.PersistentFlags().Lookup("debug")).NotTo(BeNil())
		Expect(cmd.PersistentFlags().Lookup("config-dir")).NotTo(BeNil())
		Expect(cmd.PersistentFlags().Lookup("vault")).NotTo(BeNil())
	})
})

var _ = Describe("Vault command execution", func() {
	var (
		tmpDir   string
		vaultDir string
		cfgDir   string
	)

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "mnemo-cmd-test-*")
		Expect(err).NotTo(HaveOccurred())

		tmpDir, err = filepath.EvalSymlinks(tmpDir)
		Expect(err).NotTo(HaveOccurred())

		vaultDir = filepath.Join(tmpDir, "vault")
		cfgDir = filepath.Join(tmpDir, ".mnemo")
		Expect(os.MkdirAll(cfgDir, 0o755)).To(Succeed())

		DeferCleanup(func() {
			os.RemoveAll(tmpDir)
		})
	})

	execute := func(args ...string) error {
		cmd := mnemocmder.NewMnemoCmd()
		cmd.SetArgs(append(args, "--vault", vaultDir, "--config-dir", cfgDir))
		return cmd.Execute()
	}

	Describe("store", func() {
		It("writes the memory into the default category", func() {
			Expect(execute("store", "greeting", "hello world")).To(Succeed())

			data, err := os.ReadFile(filepath.Join(vaultDir, "system", "greeting"))
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal("hello world"))
		})

		It("honors the category flag", func() {
			Expect(execute("store", "api-notes", "REST endpoints", "-c", "projects")).To(Succeed())

			data, err := os.ReadFile(filepath.Join(vaultDir, "projects", "api-notes"))
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal("REST endpoints"))
		})

		It("reads content from a file", func() {
			src := filepath.Join(tmpDir, "notes.md")
			Expect(os.WriteFile(src, []byte("# Notes\n"), 0o600)).To(Succeed())

			Expect(execute("store", "notes", "--file", src)).To(Succeed())

			data, err := os.ReadFile(filepath.Join(vaultDir, "system", "notes"))
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal("# Notes\n"))
		})
	})

	Describe("get", func() {
		It("fails for a missing memory", func() {
			Expect(execute("get", "does-not-exist")).To(HaveOccurred())
		})

		It("retrieves a stored memory", func() {
			Expect(execute("store", "greeting", "hello")).To(Succeed())
			Expect(execute("get", "greeting")).To(Succeed())
		})
	})

	Describe("append", func() {
		It("adds a newline plus the text", func() {
			Expect(execute("store", "worklog", "day one")).To(Succeed())
			Expect(execute("append", "worklog", "day two")).To(Succeed())

			data, err := os.ReadFile(filepath.Join(vaultDir, "system", "worklog"))
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal("day one\nday two"))
		})

		It("fails when the memory does not exist", func() {
			Expect(execute("append", "nope", "text")).To(HaveOccurred())
		})
	})

	Describe("rm", func() {
		It("deletes the memory file", func() {
			Expect(execute("store", "scratch", "tmp")).To(Succeed())
			Expect(execute("rm", "scratch")).To(Succeed())

			_, err := os.Stat(filepath.Join(vaultDir, "system", "scratch"))
			Expect(os.IsNotExist(err)).To(BeTrue())
		})

		It("fails when the memory does not exist", func() {
			Expect(execute("rm", "scratch")).To(HaveOccurred())
		})
	})

	Describe("list and stats", func() {
		It("runs against a populated vault", func() {
			Expect(execute("store", "one", "1")).To(Succeed())
			Expect(execute("store", "two", "2", "-c", "projects")).To(Succeed())

			Expect(execute("list")).To(Succeed())
			Expect(execute("list", "projects")).To(Succeed())
			Expect(execute("stats")).To(Succeed())
		})
	})

	Describe("clear", func() {
		It("wipes the vault with --force", func() {
			Expect(execute("store", "greeting", "hello")).To(Succeed())
			Expect(execute("clear", "--force")).To(Succeed())

			_, err := os.Stat(filepath.Join(vaultDir, "system", "greeting"))
			Expect(os.IsNotExist(err)).To(BeTrue())

			// The vault root is re-initialized.
			info, err := os.Stat(filepath.Join(vaultDir, "system"))
			Expect(err).NotTo(HaveOccurred())
			Expect(info.IsDir()).To(BeTrue())
		})
	})
})
