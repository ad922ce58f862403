package telnet

import (
	"bytes"
	"io"
)

// CommandHandler receives parsed Telnet commands and sub-negotiations
// as the Reader strips them out of the byte stream.
type CommandHandler interface {
	HandleCommand(cmd, option byte)
	HandleSubNegotiation(option byte, data []byte)
}

// Reader strips Telnet IAC sequences out of a raw connection, handing
// commands to a CommandHandler and leaving plain user data behind for
// Read to return.
type Reader struct {
	r       io.Reader
	buf     bytes.Buffer
	dataBuf bytes.Buffer
	handler CommandHandler
}

func NewReader(r io.Reader, handler CommandHandler) *Reader {
	return &Reader{r: r, handler: handler}
}

func (r *Reader) Read(p []byte) (n int, err error) {
	if r.dataBuf.Len() > 0 {
		return r.dataBuf.Read(p)
	}

	buf := make([]byte, 4096)
	n, err = r.r.Read(buf)
	if n > 0 {
		r.buf.Write(buf[:n])
		r.processCommands()
	}

	if r.dataBuf.Len() > 0 {
		return r.dataBuf.Read(p)
	}

	return 0, err
}

func (r *Reader) processCommands() {
	for {
		data := r.buf.Bytes()
		iacIndex := bytes.IndexByte(data, IAC)

		if iacIndex == -1 {
			r.dataBuf.Write(r.buf.Next(r.buf.Len()))
			return
		}

		if iacIndex > 0 {
			r.dataBuf.Write(r.buf.Next(iacIndex))
			data = r.buf.Bytes()
		}

		if len(data) < 2 {
			return
		}

		commandCode := data[1]

		if commandCode == IAC {
			r.dataBuf.WriteByte(IAC)
			r.buf.Next(2)
			continue
		}

		switch commandCode {
		case WILL, WONT, DO, DONT:
			if len(data) < 3 {
				return
			}
			option := data[2]
			if r.handler != nil {
				r.handler.HandleCommand(commandCode, option)
			}
			r.buf.Next(3)

		case SB:
			seIndex := bytes.Index(data, []byte{IAC, SE})
			if seIndex == -1 {
				return
			}

			option := data[2]
			subData := data[3:seIndex]
			if r.handler != nil {
				r.handler.HandleSubNegotiation(option, subData)
			}

			r.buf.Next(seIndex + 2)

		default:
			if r.handler != nil {
				r.handler.HandleCommand(commandCode, 0)
			}
			r.buf.Next(2)
		}
	}
}
