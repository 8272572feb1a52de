package registry

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

// ServeStdio serves the discovery meta-tools over stdio, one JSON-RPC
// request per line, one response per line. It blocks until stdin
// closes or the context is cancelled.
func ServeStdio(ctx context.Context, r *Registry) error {
	return serveLines(ctx, r, os.Stdin, os.Stdout)
}

// serveLines is the line-oriented transport behind ServeStdio, split
// out so tests can drive it with in-memory buffers.
func serveLines(ctx context.Context, r *Registry, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	encoder := json.NewEncoder(out)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := encoder.Encode(dispatchRaw(ctx, r, scanner.Bytes())); err != nil {
			return fmt.Errorf("encoding response: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading requests: %w", err)
	}
	return nil
}

// dispatchRaw decodes one JSON-RPC request and routes it to the
// registry. Malformed JSON yields a parse-error response rather than
// tearing down the transport.
func dispatchRaw(ctx context.Context, r *Registry, raw []byte) MCPResponse {
	var req MCPRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return MCPResponse{
			JSONRPC: "2.0",
			Error:   &MCPError{Code: ErrCodeParseError, Message: err.Error()},
		}
	}
	return r.HandleRequest(ctx, req)
}

// ServeHTTP returns a POST-only handler mapping one JSON-RPC request
// body to one JSON response.
func ServeHTTP(r *Registry) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		raw, err := io.ReadAll(req.Body)
		if err != nil {
			http.Error(w, "reading request body", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(dispatchRaw(req.Context(), r, raw))
	})
}

// ServeSSE returns a handler answering each POSTed JSON-RPC request on
// a Server-Sent Events stream: a "message" event carrying the
// response, or an "error" event when the body does not parse.
func ServeSSE(r *Registry) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		raw, err := io.ReadAll(req.Body)
		if err != nil {
			http.Error(w, "reading request body", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		resp := dispatchRaw(req.Context(), r, raw)
		event := "message"
		if resp.Error != nil && resp.Error.Code == ErrCodeParseError {
			event = "error"
		}
		writeEvent(w, flusher, event, resp)
	})
}

func writeEvent(w io.Writer, f http.Flusher, event string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		return
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return
	}
	f.Flush()
}
