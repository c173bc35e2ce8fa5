package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/doorpanels/pkg/buildinfo"
	"github.com/matzehuels/doorpanels/pkg/door"
	"github.com/matzehuels/doorpanels/pkg/errors"
	"github.com/matzehuels/doorpanels/pkg/pipeline"
	"github.com/matzehuels/doorpanels/pkg/render/sink"
)

// LayoutResponse is the body of a successful POST /api/layout.
type LayoutResponse struct {
	Result    door.Result `json:"result"`
	Warnings  []string    `json:"warnings"`
	Cached    bool        `json:"cached"`
	RequestID string      `json:"request_id"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error     string      `json:"error"`
	Code      errors.Code `json:"code,omitempty"`
	Field     string      `json:"field,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatJSON: "application/json",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

// handleLayout handles POST /api/layout.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decodeOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, hit, err := s.runner.ComputeLayoutWithCacheInfo(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, LayoutResponse{
		Result:    sink.Sanitize(res),
		Warnings:  nonNil(sink.Warnings(res)),
		Cached:    hit,
		RequestID: requestIDFromContext(r.Context()),
	})
}

// handleRender handles POST /api/render/{format}.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}

	opts, err := s.decodeOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Layout-Fits", boolString(result.Layout.Panels.Fits))
	if result.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// decodeOptions reads a JSON body over the default options and attaches a
// request-scoped logger.
func (s *Server) decodeOptions(r *http.Request) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil && err != io.EOF {
		return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	opts.Logger = s.logger.With("id", requestIDFromContext(r.Context()))
	return opts, nil
}

// writeJSON encodes v before touching the response, so an unencodable value
// becomes a 500 instead of a truncated 200.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		data, _ = json.Marshal(ErrorResponse{
			Error: "encode response: " + err.Error(),
			Code:  errors.ErrCodeInternal,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}

// writeError maps an error code to an HTTP status and writes an ErrorResponse.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", requestIDFromContext(r.Context()), "error", err)
	}
	writeJSON(w, status, ErrorResponse{
		Error:     errors.UserMessage(err),
		Code:      errors.GetCode(err),
		Field:     errors.GetField(err),
		RequestID: requestIDFromContext(r.Context()),
	})
}

// StatusFor returns the HTTP status for an error: 400 for validation
// failures, 404 for missing resources, 501 for unsupported requests and 500
// otherwise.
func StatusFor(err error) int {
	switch {
	case errors.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeNotFound), errors.Is(err, errors.ErrCodeFileNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
