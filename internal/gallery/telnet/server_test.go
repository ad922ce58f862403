package telnet_test

import (
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/textmode-tools/gosauce/internal/catalog"
	"github.com/textmode-tools/gosauce/internal/gallery/telnet"
)

var _ = Describe("Server", func() {
	var (
		store   *catalog.Store
		artPath string
		server  *telnet.Server
	)

	BeforeEach(func() {
		var err error
		store, err = catalog.New(":memory:", true)
		Expect(err).NotTo(HaveOccurred())

		dir, err := os.MkdirTemp("", "gosauce-gallery-*")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() { _ = os.RemoveAll(dir) })

		artPath = filepath.Join(dir, "art.ans")
		Expect(os.WriteFile(artPath, []byte("hello gallery\x1a"), 0o644)).To(Succeed())
		Expect(store.UpsertEntry(&catalog.CatalogEntry{Path: artPath, Title: "Art"})).To(Succeed())

		server = telnet.NewServer(0, store, slog.New(slog.NewTextHandler(io.Discard, nil)))
		go server.ListenAndServe()

		Eventually(server.Addr).ShouldNot(BeNil())
	})

	AfterEach(func() {
		Expect(server.Stop()).To(Succeed())
	})

	It("streams the cataloged file's contents (with no raw SAUCE trailer) to a connecting client", func() {
		conn, err := net.DialTimeout("tcp", server.Addr().String(), 2*time.Second)
		Expect(err).NotTo(HaveOccurred())
		defer conn.Close()
		conn.SetDeadline(time.Now().Add(3 * time.Second))

		out, err := io.ReadAll(conn)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(out)).To(ContainSubstring("hello gallery"))
		Expect(string(out)).To(ContainSubstring(artPath))
		Expect(out).NotTo(ContainSubstring("SAUCE"))
	})
})
