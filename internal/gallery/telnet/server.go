// Package telnet is the read-only telnet kiosk: on connect it renders
// one cataloged art file's contents, followed by its SAUCE details, and
// disconnects. There is no login and no session state — RFC 854 option
// negotiation is the only protocol machinery this server needs.
package telnet

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strings"
	"time"

	sauce "github.com/textmode-tools/gosauce"
	"github.com/textmode-tools/gosauce/internal/catalog"
	"github.com/textmode-tools/gosauce/internal/cp437"
)

// Server accepts telnet connections and serves one gallery pick per
// connection from the catalog.
type Server struct {
	port    int
	catalog *catalog.Store
	logger  *slog.Logger
	ln      net.Listener
}

// NewServer builds a Server bound to the given catalog store.
func NewServer(port int, store *catalog.Store, logger *slog.Logger) *Server {
	return &Server{port: port, catalog: store, logger: logger}
}

// ListenAndServe blocks accepting connections until Stop is called.
func (s *Server) ListenAndServe() error {
	var err error
	s.ln, err = net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return err
	}
	s.logger.Info("telnet gallery listening", "port", s.port)
	defer s.ln.Close()

	for {
		conn, err := s.ln.Accept()
		if err != nil {
			var opErr *net.OpError
			if errors.As(err, &opErr) && strings.Contains(opErr.Err.Error(), "closed network connection") {
				return nil
			}
			s.logger.Error("telnet accept error", "err", err)
			continue
		}
		go s.handleConnection(conn)
	}
}

// Stop closes the listener, ending ListenAndServe.
func (s *Server) Stop() error {
	if s.ln != nil {
		return s.ln.Close()
	}
	return nil
}

// Addr reports the listener's bound address, useful when the port was
// chosen dynamically (port 0).
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

func (s *Server) handleConnection(conn net.Conn) {
	tc := NewConnection(conn, s.logger)
	defer tc.Close()

	tc.SendWill(TransmitBinary)
	tc.SendDo(NAWS)
	tc.SendDo(TType)

	// Give the client a moment to finish negotiating before we start
	// writing the gallery pick; a raw telnet client that ignores the
	// negotiation entirely still works, it just sees a slightly odd
	// prefix of option bytes get discarded by its own terminal.
	time.Sleep(150 * time.Millisecond)

	if err := s.serveEntry(tc); err != nil {
		s.logger.Warn("telnet gallery serve failed", "addr", conn.RemoteAddr(), "err", err)
		fmt.Fprintf(tc, "\r\nno art available: %v\r\n", err)
	}
}

func (s *Server) serveEntry(w *Connection) error {
	entry, err := s.catalog.Random()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(entry.Path)
	if err != nil {
		return err
	}

	block, err := sauce.Sauce(data)
	if err != nil && !errors.Is(err, sauce.ErrNoSauce) {
		s.logger.Warn("cataloged file has invalid SAUCE", "path", entry.Path, "err", err)
	}

	contents := sauce.Contents(data, false)
	if _, err := w.Write([]byte(cp437.Decode(contents))); err != nil {
		return err
	}

	fmt.Fprintf(w, "\r\n\r\n--- %s ---\r\n", entry.Path)
	if block != nil {
		for key, value := range block.Details() {
			fmt.Fprintf(w, "%s: %v\r\n", key, value)
		}
	}
	return nil
}
