package telnet

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"net"
	"sync"
)

// OptionState is the negotiated state of a Telnet option.
type OptionState int

const (
	OptionDisabled OptionState = iota
	OptionEnabled
)

// Connection wraps a net.Conn with IAC negotiation, escaping simple
// enough terminal-detection state (window size, terminal type) for a
// display-only kiosk that never echoes input back.
type Connection struct {
	conn   net.Conn
	reader *Reader
	writer *Writer
	logger *slog.Logger

	localOptions  map[byte]OptionState
	remoteOptions map[byte]OptionState
	sentWill      map[byte]bool
	sentDo        map[byte]bool

	mu sync.RWMutex

	TerminalType string
	WindowWidth  int
	WindowHeight int
}

func NewConnection(conn net.Conn, logger *slog.Logger) *Connection {
	c := &Connection{
		conn:          conn,
		logger:        logger,
		localOptions:  make(map[byte]OptionState),
		remoteOptions: make(map[byte]OptionState),
		sentWill:      make(map[byte]bool),
		sentDo:        make(map[byte]bool),
	}
	c.reader = NewReader(conn, c)
	c.writer = NewWriter(conn)
	return c
}

func (c *Connection) Read(p []byte) (int, error)  { return c.reader.Read(p) }
func (c *Connection) Write(p []byte) (int, error) { return c.writer.Write(p) }
func (c *Connection) Close() error                { return c.conn.Close() }
func (c *Connection) RemoteAddr() net.Addr        { return c.conn.RemoteAddr() }

// HandleCommand implements CommandHandler.
func (c *Connection) HandleCommand(cmd, option byte) {
	c.logCommand("IN", cmd, option)

	switch cmd {
	case DO:
		switch option {
		case Echo, SGA, TransmitBinary:
			if !c.IsLocalOptionEnabled(option) {
				c.EnableLocalOption(option)
				c.SendWill(option)
			}
		default:
			c.SendWont(option)
		}

	case DONT:
		if c.IsLocalOptionEnabled(option) {
			c.DisableLocalOption(option)
		}
		c.SendWont(option)

	case WILL:
		switch option {
		case SGA, TransmitBinary:
			if !c.IsRemoteOptionEnabled(option) {
				c.EnableRemoteOption(option)
				c.SendDo(option)
			}
		case NAWS:
			if !c.IsRemoteOptionEnabled(NAWS) {
				c.EnableRemoteOption(NAWS)
				c.SendDo(NAWS)
			}
		case TType:
			if !c.IsRemoteOptionEnabled(TType) {
				c.EnableRemoteOption(TType)
				c.SendDo(TType)
				c.SendSubNegotiation(TType, []byte{SEND})
			}
		default:
			c.SendDont(option)
		}

	case WONT:
		if c.IsRemoteOptionEnabled(option) {
			c.DisableRemoteOption(option)
		}

	case AYT:
		c.writer.Write([]byte("\r\n[Yes]\r\n"))
	}
}

// HandleSubNegotiation implements CommandHandler.
func (c *Connection) HandleSubNegotiation(option byte, data []byte) {
	switch option {
	case NAWS:
		if len(data) >= 4 {
			width := int(binary.BigEndian.Uint16(data[0:2]))
			height := int(binary.BigEndian.Uint16(data[2:4]))
			c.mu.Lock()
			c.WindowWidth = width
			c.WindowHeight = height
			c.mu.Unlock()
		}
	case TType:
		if len(data) > 1 && data[0] == IS {
			ttype := string(data[1:])
			c.mu.Lock()
			c.TerminalType = ttype
			c.mu.Unlock()
		}
	}
}

func (c *Connection) EnableLocalOption(o byte)  { c.localOptions[o] = OptionEnabled }
func (c *Connection) DisableLocalOption(o byte) { c.localOptions[o] = OptionDisabled }
func (c *Connection) EnableRemoteOption(o byte) { c.remoteOptions[o] = OptionEnabled }
func (c *Connection) DisableRemoteOption(o byte) {
	c.remoteOptions[o] = OptionDisabled
}
func (c *Connection) IsLocalOptionEnabled(o byte) bool  { return c.localOptions[o] == OptionEnabled }
func (c *Connection) IsRemoteOptionEnabled(o byte) bool { return c.remoteOptions[o] == OptionEnabled }

func (c *Connection) logCommand(direction string, cmd, option byte) {
	if c.logger == nil {
		return
	}
	optName := OptionNames[option]
	if optName == "" {
		optName = fmt.Sprintf("Unknown(%d)", option)
	}
	c.logger.Debug("telnet command", "dir", direction, "cmd", CommandNames[cmd], "opt", optName)
}

func (c *Connection) SendWill(option byte) error {
	if c.sentWill[option] {
		return nil
	}
	c.sentWill[option] = true
	c.logCommand("OUT", WILL, option)
	return c.writer.WriteCommand(WILL, option)
}

func (c *Connection) SendWont(option byte) error {
	c.sentWill[option] = false
	c.logCommand("OUT", WONT, option)
	return c.writer.WriteCommand(WONT, option)
}

func (c *Connection) SendDo(option byte) error {
	if c.sentDo[option] {
		return nil
	}
	c.sentDo[option] = true
	c.logCommand("OUT", DO, option)
	return c.writer.WriteCommand(DO, option)
}

func (c *Connection) SendDont(option byte) error {
	c.sentDo[option] = false
	c.logCommand("OUT", DONT, option)
	return c.writer.WriteCommand(DONT, option)
}

func (c *Connection) SendSubNegotiation(option byte, data []byte) error {
	return c.writer.WriteSubNegotiation(option, data)
}
