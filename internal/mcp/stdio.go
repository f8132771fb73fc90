package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"

	"github.com/xano-labs/xano-mcp-server/internal/protocol"
)

const maxLineBytes = 16 << 20

// ServeStdio reads newline-delimited JSON-RPC requests from in and writes one
// response line per request to out. Requests run concurrently; writes are
// serialized. It returns when in is exhausted or ctx is cancelled, after all
// in-flight requests have been answered.
func ServeStdio(ctx context.Context, server *Server, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := &lineWriter{enc: json.NewEncoder(out)}
	w.enc.SetEscapeHTML(false)

	lines := make(chan []byte)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
		for scanner.Scan() {
			line := append([]byte(nil), scanner.Bytes()...)
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				wg.Wait()
				select {
				case err := <-readErr:
					return err
				default:
					return nil
				}
			}
			if len(bytes.TrimSpace(line)) == 0 {
				continue
			}

			req, rpcErr := decodeRequest(line)
			if rpcErr != nil {
				if werr := w.write(protocol.Response{JSONRPC: "2.0", ID: nil, Error: rpcErr}); werr != nil {
					return werr
				}
				continue
			}

			wg.Add(1)
			go func() {
				defer wg.Done()
				resp, reply := server.Handle(ctx, req)
				if !reply {
					return
				}
				if err := w.write(resp); err != nil && !errors.Is(err, io.ErrClosedPipe) {
					cancel()
				}
			}()
		}
	}
}

// decodeRequest separates malformed JSON (parse error) from well-formed JSON
// that is not a request object, such as a batch array (invalid request).
func decodeRequest(raw []byte) (protocol.Request, *protocol.ResponseError) {
	var req protocol.Request
	if !json.Valid(raw) {
		return req, &protocol.ResponseError{Code: protocol.CodeParseError, Message: "invalid JSON"}
	}
	if err := json.Unmarshal(raw, &req); err != nil {
		return req, &protocol.ResponseError{Code: protocol.CodeInvalidRequest, Message: "invalid request: expected a single JSON-RPC object"}
	}
	return req, nil
}

type lineWriter struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// write emits one response; json.Encoder terminates each value with a newline.
func (w *lineWriter) write(resp protocol.Response) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.enc.Encode(resp)
}
