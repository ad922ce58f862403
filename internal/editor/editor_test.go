package editor_test

import (
	"net"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	sauce "github.com/textmode-tools/gosauce"
	"github.com/textmode-tools/gosauce/internal/editor"
)

func TestEditor(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Editor Suite")
}

var _ = Describe("Run", func() {
	It("returns nil, nil when the user aborts with ctrl+c", func() {
		serverSide, clientSide := net.Pipe()
		defer clientSide.Close()

		block := sauce.NewBlock(sauce.MediaInfo{}, "", "Old Title", "Old Author", "Old Group", nil)

		type result struct {
			block *sauce.SauceBlock
			err   error
		}
		done := make(chan result, 1)

		go func() {
			b, err := editor.Run(serverSide, block)
			done <- result{b, err}
		}()

		// Give the form a moment to start reading, then send ctrl+c.
		time.Sleep(50 * time.Millisecond)
		_, _ = clientSide.Write([]byte{0x03})

		select {
		case r := <-done:
			Expect(r.err).NotTo(HaveOccurred())
			Expect(r.block).To(BeNil())
		case <-time.After(2 * time.Second):
			Fail("editor.Run did not return after ctrl+c")
		}
	})
})
