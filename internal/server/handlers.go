package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/leapstack-labs/triptjs/pkg/codegen"
	"github.com/leapstack-labs/triptjs/pkg/compile"
	"github.com/leapstack-labs/triptjs/pkg/driver"
	"github.com/leapstack-labs/triptjs/pkg/identifier"
	"github.com/leapstack-labs/triptjs/pkg/jsast"
	"github.com/leapstack-labs/triptjs/pkg/reserved"
	"github.com/leapstack-labs/triptjs/pkg/tript"
)

// RequestIDHeader carries the request ID on requests and responses.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// CompileResponse is the body of a successful POST /compile.
type CompileResponse struct {
	RequestID   string             `json:"request_id"`
	Code        string             `json:"code,omitempty"`
	AST         jsast.Expression   `json:"ast,omitempty"`
	Diagnostics driver.Diagnostics `json:"diagnostics,omitempty"`
}

// ReservedResponse is the body of GET /reserved/{word}.
type ReservedResponse struct {
	Word      string            `json:"word"`
	Reserved  bool              `json:"reserved"`
	Editions  map[string]string `json:"editions"`
	Sanitized string            `json:"sanitized"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	RequestID string `json:"request_id"`
	Error     string `json:"error"`
	Kind      string `json:"kind,omitempty"`
}

// requestID takes the caller's request ID or assigns a new UUID.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"request_id", getRequestID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func getRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReserved(w http.ResponseWriter, r *http.Request) {
	word := chi.URLParam(r, "word")

	resp := ReservedResponse{
		Word:      word,
		Editions:  make(map[string]string),
		Sanitized: identifier.Sanitize(word, s.ids),
	}
	for _, e := range reserved.List() {
		switch {
		case e.IsReserved(word, false):
			resp.Editions[e.Name] = "reserved"
		case e.IsReserved(word, true):
			resp.Editions[e.Name] = "strict"
		}
	}
	table := s.ids.Table
	if table == nil {
		table = reserved.ECMAScript
	}
	resp.Reserved = table.IsReserved(word, s.ids.Dialect.Resolve(), s.ids.Strict)

	writeJSON(w, http.StatusOK, resp)
}

// handleCompile compiles a tript AST posted as JSON. The "emit" query
// parameter selects js (default) or ast.
func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	id := getRequestID(r.Context())
	logger := s.logger.With("request_id", id)

	emit := r.URL.Query().Get("emit")
	if emit != "" && emit != "js" && emit != "ast" {
		s.writeError(w, r, http.StatusBadRequest, "emit must be js or ast", "")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, r, http.StatusRequestEntityTooLarge, "request body too large", "")
			return
		}
		s.writeError(w, r, http.StatusBadRequest, "failed to read request body", "")
		return
	}

	node, err := tript.Decode(body)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err.Error(), "decode")
		return
	}

	out, err := s.driver.Compile(r.Context(), node)
	if err != nil {
		logger.Debug("compile failed", "error", err)
		status, kind := classify(err)
		s.writeError(w, r, status, err.Error(), kind)
		return
	}

	resp := CompileResponse{RequestID: id, Diagnostics: out.Diagnostics}
	if emit == "ast" {
		resp.AST = out.AST
	} else {
		resp.Code = out.Code
	}
	status := http.StatusOK
	if len(out.Diagnostics) > 0 {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, resp)
}

// classify maps a compile error to a status code and an error kind.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, compile.ErrUnknownNodeKind):
		return http.StatusUnprocessableEntity, "unknown_node_kind"
	case errors.Is(err, compile.ErrUnknownOperator):
		return http.StatusUnprocessableEntity, "unknown_operator"
	case errors.Is(err, codegen.ErrInvalidOutput):
		return http.StatusUnprocessableEntity, "invalid_output"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "cancelled"
	default:
		return http.StatusInternalServerError, ""
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, msg, kind string) {
	writeJSON(w, status, ErrorResponse{
		RequestID: getRequestID(r.Context()),
		Error:     msg,
		Kind:      kind,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Debug("failed to write response", "error", err)
	}
}
