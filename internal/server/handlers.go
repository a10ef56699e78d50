package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/matzehuels/strut/pkg/buildinfo"
	"github.com/matzehuels/strut/pkg/cache"
	"github.com/matzehuels/strut/pkg/errors"
	"github.com/matzehuels/strut/pkg/observability"
	"github.com/matzehuels/strut/pkg/render/dot"
	"github.com/matzehuels/strut/pkg/scene"
)

// handleSolve resolves a JSON scene document to frames.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	key := s.keyer.SolveKey(cache.Hash(body))
	if s.serveCached(w, r, key, "application/json") {
		return
	}

	a, err := assemble(body)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := a.Solve(); err != nil {
		s.writeError(w, err)
		return
	}
	out, err := a.MarshalFrames()
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.store(r, key, out)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "MISS")
	_, _ = w.Write(out)
}

// handleGraph renders a scene's constraint graph. The format query
// parameter selects dot (default) or svg output.
func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "dot"
	}
	contentType, ok := map[string]string{
		"dot": "text/vnd.graphviz",
		"svg": "image/svg+xml",
	}[format]
	if !ok {
		s.writeError(w, errors.New(errors.ErrCodeInvalidScene, "unsupported format %q (want dot or svg)", format))
		return
	}

	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	key := s.keyer.RenderKey(cache.Hash(body), format)
	if s.serveCached(w, r, key, contentType) {
		return
	}

	a, err := assemble(body)
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := []byte(dot.ToDOT(a.Container, dot.Options{Detailed: true}))
	if format == "svg" {
		out, err = dot.RenderSVG(string(out))
		if err != nil {
			s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "render SVG"))
			return
		}
	}

	s.store(r, key, out)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Cache", "MISS")
	_, _ = w.Write(out)
}

// handleHealthz reports liveness and build information.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func assemble(body []byte) (*scene.Assembly, error) {
	doc, err := scene.DecodeJSON(body)
	if err != nil {
		return nil, err
	}
	return doc.Assemble()
}

// readBody reads the size-capped request body, writing the error response
// itself when reading fails.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBytes))
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidScene, err, "read request body"))
		return nil, false
	}
	return body, true
}

// serveCached writes the cached entry for key if one exists. Cache errors
// are logged and treated as misses.
func (s *Server) serveCached(w http.ResponseWriter, r *http.Request, key, contentType string) bool {
	data, hit, err := s.cache.Get(r.Context(), key)
	if err != nil {
		s.logger.Warn("cache get failed", "key", key, "err", err)
		return false
	}
	if !hit {
		observability.Cache().OnCacheMiss(r.Context(), key)
		return false
	}
	observability.Cache().OnCacheHit(r.Context(), key)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Cache", "HIT")
	_, _ = w.Write(data)
	return true
}

// store writes a result to the cache, retrying transient backend failures.
func (s *Server) store(r *http.Request, key string, data []byte) {
	err := cache.RetryWithBackoff(r.Context(), func() error {
		return s.cache.Set(r.Context(), key, data, s.ttl)
	})
	if err != nil {
		s.logger.Warn("cache set failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(r.Context(), key, len(data))
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps an error to a status code and JSON envelope.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidScene, errors.ErrCodeInvalidConstraint, errors.ErrCodeInvalidAttribute, errors.ErrCodeUnknownItem:
		status = http.StatusBadRequest
	case errors.ErrCodeOverconstrained, errors.ErrCodeCycle:
		status = http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound:
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: errorBody{
		Code:    string(code),
		Message: errors.UserMessage(err),
	}})
}
