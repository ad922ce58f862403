// Package ssh is the SSH gallery: anonymous connections get the same
// read-only random pick the telnet kiosk serves, while a curator
// (password-authenticated against internal/catalog's user table) can
// run `edit <path>` to open the interactive SAUCE editor over their
// session.
package ssh

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	gliderssh "github.com/gliderlabs/ssh"

	sauce "github.com/textmode-tools/gosauce"
	"github.com/textmode-tools/gosauce/internal/catalog"
	"github.com/textmode-tools/gosauce/internal/cp437"
	"github.com/textmode-tools/gosauce/internal/editor"
)

type curatorKey struct{}

// Server is the SSH gallery listener.
type Server struct {
	port    int
	keyFile string
	catalog *catalog.Store
	logger  *slog.Logger
	server  *gliderssh.Server
}

// NewServer builds a Server bound to the given catalog store and host
// key file.
func NewServer(port int, keyFile string, store *catalog.Store, logger *slog.Logger) *Server {
	return &Server{port: port, keyFile: keyFile, catalog: store, logger: logger}
}

// ListenAndServe blocks accepting sessions until Stop is called.
func (s *Server) ListenAndServe() error {
	s.server = &gliderssh.Server{
		Addr:            fmt.Sprintf(":%d", s.port),
		Handler:         s.HandleSession,
		PasswordHandler: s.PasswordHandler,
	}

	if err := s.server.SetOption(gliderssh.HostKeyFile(s.keyFile)); err != nil {
		return err
	}

	s.logger.Info("SSH gallery listening", "port", s.port)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, gliderssh.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop closes the listener, ending ListenAndServe.
func (s *Server) Stop() error {
	if s.server != nil {
		return s.server.Close()
	}
	return nil
}

// PasswordHandler grants anonymous browse-only access to an empty
// password and curator access to anyone who authenticates against the
// catalog's user table.
func (s *Server) PasswordHandler(ctx gliderssh.Context, password string) bool {
	user, ok := s.Authenticate(ctx.User(), password)
	if !ok {
		return false
	}
	if user != nil {
		ctx.SetValue(curatorKey{}, user)
	}
	return true
}

// Authenticate holds the actual anonymous/curator decision, kept
// separate from PasswordHandler so it can be exercised without a real
// gliderssh.Context. An empty password is always accepted as anonymous
// browse-only access (nil user, ok=true).
func (s *Server) Authenticate(username, password string) (*catalog.User, bool) {
	if password == "" {
		return nil, true
	}

	user, err := s.catalog.Authenticate(username, password)
	if err != nil {
		s.logger.Debug("SSH login failed", "user", username, "err", err)
		return nil, false
	}
	return user, true
}

// HandleSession serves one connected client: curators running `edit
// <path>` get the TUI, everyone else gets a random gallery pick.
func (s *Server) HandleSession(sess gliderssh.Session) {
	conn := NewConnection(sess)
	defer conn.Close()

	_, isCurator := sess.Context().Value(curatorKey{}).(*catalog.User)
	info := conn.TerminalInfo()

	s.logger.Info("SSH connection established",
		"user", sess.User(), "curator", isCurator, "term", info.Type, "width", info.Width, "height", info.Height)
	defer s.logger.Info("SSH connection closed", "addr", sess.RemoteAddr())

	cmd := sess.Command()
	if isCurator && len(cmd) >= 2 && cmd[0] == "edit" {
		s.runEditor(conn, cmd[1])
		return
	}

	s.browse(conn)
}

func (s *Server) runEditor(conn *Connection, path string) {
	file, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		fmt.Fprintf(conn, "cannot open %s: %v\r\n", path, err)
		return
	}
	defer file.Close()

	block, err := sauce.ReadSauce(file)
	if err != nil && !errors.Is(err, sauce.ErrNoSauce) {
		fmt.Fprintf(conn, "cannot read %s: %v\r\n", path, err)
		return
	}
	if block == nil {
		block = sauce.NewBlock(sauce.MediaInfo{}, "", "", "", "", nil)
	}

	result, err := editor.Run(conn, block)
	if err != nil {
		fmt.Fprintf(conn, "editor error: %v\r\n", err)
		return
	}
	if result == nil {
		return // user cancelled
	}

	if err := sauce.WriteFile(file, result); err != nil {
		fmt.Fprintf(conn, "failed to save %s: %v\r\n", path, err)
		return
	}
	fmt.Fprintf(conn, "saved %s\r\n", path)
}

func (s *Server) browse(conn *Connection) {
	entry, err := s.catalog.Random()
	if err != nil {
		fmt.Fprintf(conn, "no art available: %v\r\n", err)
		return
	}

	data, err := os.ReadFile(entry.Path)
	if err != nil {
		fmt.Fprintf(conn, "cannot read %s: %v\r\n", entry.Path, err)
		return
	}

	conn.Write([]byte(cp437.Decode(sauce.Contents(data, false))))
	fmt.Fprintf(conn, "\r\n\r\n--- %s ---\r\n", entry.Path)
}
