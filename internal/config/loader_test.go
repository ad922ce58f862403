package config_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/textmode-tools/gosauce/internal/config"
)

func TestConfig(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Config Suite")
}

var _ = Describe("Load", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "gosauce-config-*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		_ = os.RemoveAll(dir)
	})

	write := func(name, contents string) string {
		path := filepath.Join(dir, name)
		Expect(os.WriteFile(path, []byte(contents), 0o644)).To(Succeed())
		return path
	}

	It("loads a single file with no includes", func() {
		path := write("main.yml", "paths:\n  artRoot: ./art\n  data: ./data\n")
		cfg, err := config.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Paths.ArtRoot).To(Equal("./art"))
		Expect(cfg.LoadedFiles).To(HaveLen(1))
	})

	It("resolves included files relative to the including file, not the process cwd", func() {
		// nested/listeners.yml is only reachable relative to main.yml's
		// own directory, not the current working directory.
		Expect(os.MkdirAll(filepath.Join(dir, "nested"), 0o755)).To(Succeed())
		listenersPath := filepath.Join(dir, "nested", "listeners.yml")
		Expect(os.WriteFile(listenersPath, []byte("listeners:\n  telnet:\n    enabled: true\n    port: 2323\n"), 0o644)).To(Succeed())

		mainPath := write("main.yml", "include:\n  - nested/listeners.yml\npaths:\n  artRoot: ./art\n")

		cfg, err := config.Load(mainPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Listeners.Telnet.Enabled).To(BeTrue())
		Expect(cfg.Listeners.Telnet.Port).To(Equal(2323))
		Expect(cfg.LoadedFiles).To(HaveLen(2))
	})

	It("expands environment variables before parsing", func() {
		Expect(os.Setenv("GOSAUCE_TEST_ART_ROOT", "/srv/art")).To(Succeed())
		defer os.Unsetenv("GOSAUCE_TEST_ART_ROOT")

		path := write("main.yml", "paths:\n  artRoot: ${GOSAUCE_TEST_ART_ROOT}\n")
		cfg, err := config.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Paths.ArtRoot).To(Equal("/srv/art"))
	})

	It("does not loop forever on a circular include", func() {
		aPath := filepath.Join(dir, "a.yml")
		bPath := filepath.Join(dir, "b.yml")
		Expect(os.WriteFile(aPath, []byte("include:\n  - b.yml\ndebug: true\n"), 0o644)).To(Succeed())
		Expect(os.WriteFile(bPath, []byte("include:\n  - a.yml\nhotReload: true\n"), 0o644)).To(Succeed())

		cfg, err := config.Load(aPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Debug).To(BeTrue())
		Expect(cfg.HotReload).To(BeTrue())
	})
})
