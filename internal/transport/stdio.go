// Package transport implements the Transport Adapter (spec §4.7/§6):
// Content-Length-framed JSON-RPC messages over a pair of byte streams,
// grounded on the teacher's own header-parsing loop in
// LSPJSONRPCProtocol.HandleResponses (src/server/protocol/jsonrpc.go), but
// simplified to one message at a time rather than an async response reader.
package transport

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"solidity-lsp/internal/rpc"
)

// Stdio frames JSON-RPC messages with LSP's Content-Length header over an
// arbitrary reader/writer pair (production use passes os.Stdin/os.Stdout;
// tests pass in-memory buffers).
type Stdio struct {
	reader *bufio.Reader
	writer io.Writer
	wmu    sync.Mutex
}

// NewStdio wraps r/w in a framed transport.
func NewStdio(r io.Reader, w io.Writer) *Stdio {
	return &Stdio{reader: bufio.NewReader(r), writer: w}
}

// Receive reads and decodes the next framed message. It returns io.EOF once
// the underlying reader is closed, signaling the server's main loop to shut
// down (spec §6: "the transport reports its channel closed instead of
// erroring").
func (s *Stdio) Receive() (rpc.Message, error) {
	contentLength := -1

	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return rpc.Message{}, io.EOF
			}
			return rpc.Message{}, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		if name, value, ok := splitHeader(line); ok && strings.EqualFold(name, "Content-Length") {
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return rpc.Message{}, fmt.Errorf("malformed Content-Length header %q: %w", value, err)
			}
			contentLength = n
		}
	}

	if contentLength < 0 {
		return rpc.Message{}, fmt.Errorf("frame missing Content-Length header")
	}

	body := make([]byte, contentLength)
	if _, err := io.ReadFull(s.reader, body); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return rpc.Message{}, io.EOF
		}
		return rpc.Message{}, err
	}

	var msg rpc.Message
	if err := json.Unmarshal(body, &msg); err != nil {
		return rpc.Message{}, err
	}
	return msg, nil
}

// Send encodes and writes msg as one Content-Length-framed message. Safe for
// concurrent use — the server can push a notification while a request
// response is also being written.
func (s *Stdio) Send(msg rpc.Message) error {
	msg.JSONRPC = rpc.Version
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	s.wmu.Lock()
	defer s.wmu.Unlock()

	if _, err := fmt.Fprintf(s.writer, "Content-Length: %d\r\n\r\n", len(data)); err != nil {
		return err
	}
	_, err = s.writer.Write(data)
	return err
}

func splitHeader(line string) (name, value string, ok bool) {
	idx := strings.IndexByte(line, ':')
	if idx < 0 {
		return "", "", false
	}
	return line[:idx], line[idx+1:], true
}
