package telnet_test

import (
	"io"
	"log/slog"
	"net"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/textmode-tools/gosauce/internal/gallery/telnet"
)

var _ = Describe("Connection", func() {
	var (
		serverConn net.Conn
		clientConn net.Conn
		connection *telnet.Connection
	)

	BeforeEach(func() {
		serverConn, clientConn = net.Pipe()
		connection = telnet.NewConnection(serverConn, slog.New(slog.NewTextHandler(io.Discard, nil)))

		serverConn.SetDeadline(time.Now().Add(2 * time.Second))
		clientConn.SetDeadline(time.Now().Add(2 * time.Second))
	})

	AfterEach(func() {
		connection.Close()
		clientConn.Close()
	})

	drain := func() {
		go func() {
			defer GinkgoRecover()
			buf := make([]byte, 1024)
			for {
				if _, err := connection.Read(buf); err != nil {
					return
				}
			}
		}()
	}

	Context("negotiation", func() {
		It("responds to DO ECHO with WILL ECHO", func() {
			drain()

			_, err := clientConn.Write([]byte{telnet.IAC, telnet.DO, telnet.Echo})
			Expect(err).NotTo(HaveOccurred())

			buf := make([]byte, 1024)
			n, err := clientConn.Read(buf)
			Expect(err).NotTo(HaveOccurred())
			Expect(buf[:n]).To(Equal([]byte{telnet.IAC, telnet.WILL, telnet.Echo}))

			Eventually(connection.IsLocalOptionEnabled).WithArguments(telnet.Echo).Should(BeTrue())
		})

		It("responds to WILL NAWS with DO NAWS", func() {
			drain()

			_, err := clientConn.Write([]byte{telnet.IAC, telnet.WILL, telnet.NAWS})
			Expect(err).NotTo(HaveOccurred())

			buf := make([]byte, 1024)
			n, err := clientConn.Read(buf)
			Expect(err).NotTo(HaveOccurred())
			Expect(buf[:n]).To(Equal([]byte{telnet.IAC, telnet.DO, telnet.NAWS}))

			Eventually(connection.IsRemoteOptionEnabled).WithArguments(telnet.NAWS).Should(BeTrue())
		})

		It("handles AYT with a plain text reply", func() {
			drain()

			_, err := clientConn.Write([]byte{telnet.IAC, telnet.AYT})
			Expect(err).NotTo(HaveOccurred())

			buf := make([]byte, 1024)
			n, err := clientConn.Read(buf)
			Expect(err).NotTo(HaveOccurred())
			Expect(buf[:n]).To(Equal([]byte("\r\n[Yes]\r\n")))
		})
	})

	Context("sub-negotiation", func() {
		It("parses NAWS window-size data", func() {
			drain()
			connection.EnableRemoteOption(telnet.NAWS)

			data := []byte{
				telnet.IAC, telnet.SB, telnet.NAWS,
				0, 80, 0, 24,
				telnet.IAC, telnet.SE,
			}
			_, err := clientConn.Write(data)
			Expect(err).NotTo(HaveOccurred())

			Eventually(func() int { return connection.WindowWidth }, time.Second).Should(Equal(80))
			Expect(connection.WindowHeight).To(Equal(24))
		})
	})
})
