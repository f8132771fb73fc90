package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xano-labs/xano-mcp-server/internal/protocol"
)

// NewHTTPHandler serves MCP JSON-RPC requests via POST on "/" and a health check on "/health".
// Expects a single JSON-RPC request per call.
func NewHTTPHandler(server *Server) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		raw, err := io.ReadAll(r.Body)
		if err != nil {
			writeJSON(w, protocol.Response{JSONRPC: "2.0", Error: &protocol.ResponseError{Code: protocol.CodeParseError, Message: "unreadable body"}}, http.StatusBadRequest)
			return
		}
		req, rpcErr := decodeRequest(bytes.TrimSpace(raw))
		if rpcErr != nil {
			writeJSON(w, protocol.Response{JSONRPC: "2.0", Error: rpcErr}, http.StatusBadRequest)
			return
		}

		resp, reply := server.Handle(r.Context(), req)
		if !reply {
			w.WriteHeader(http.StatusAccepted)
			return
		}
		writeJSON(w, resp, http.StatusOK)
	})
	return mux
}

// RunHTTP serves the MCP HTTP handler on addr until ctx is cancelled.
func RunHTTP(ctx context.Context, server *Server, addr string, log *logrus.Entry) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewHTTPHandler(server),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("HTTP MCP server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	}
}

func writeJSON(w http.ResponseWriter, resp protocol.Response, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(resp)
}
