package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/floatplace/pkg/buildinfo"
	"github.com/matzehuels/floatplace/pkg/errors"
	"github.com/matzehuels/floatplace/pkg/observability"
	"github.com/matzehuels/floatplace/pkg/pipeline"
	"github.com/matzehuels/floatplace/pkg/scenario"
)

// =============================================================================
// Wire Types
// =============================================================================

// ErrorBody describes a failed request or batch item.
type ErrorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	RequestID string    `json:"request_id"`
	Error     ErrorBody `json:"error"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

// BatchRequest is the body of POST /v1/compute/batch.
type BatchRequest struct {
	Scenarios []json.RawMessage `json:"scenarios"`
}

// BatchItem is the outcome of one scenario of a batch. Exactly one of
// Result and Error is set.
type BatchItem struct {
	Index  int              `json:"index"`
	Cached bool             `json:"cached,omitempty"`
	Result *pipeline.Result `json:"result,omitempty"`
	Error  *ErrorBody       `json:"error,omitempty"`
}

// BatchResponse is the body of a successful batch request.
type BatchResponse struct {
	RequestID string      `json:"request_id"`
	Results   []BatchItem `json:"results"`
	Failed    int         `json:"failed"`
}

// computeFlags are the query options shared by both compute routes.
type computeFlags struct {
	trace   bool
	noCache bool
}

func parseFlags(r *http.Request) (computeFlags, error) {
	var f computeFlags
	q := r.URL.Query()
	for name, dst := range map[string]*bool{"trace": &f.trace, "no_cache": &f.noCache} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return f, errors.New(errors.ErrCodeInvalidInput, "query parameter %s: %q is not a boolean", name, v)
		}
		*dst = b
	}
	return f, nil
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleCompute(w http.ResponseWriter, r *http.Request) {
	flags, err := parseFlags(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	body, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, cached, err := s.compute(r.Context(), body, flags)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("X-Cache", cacheStatus(cached))
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	flags, err := parseFlags(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	body, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req BatchRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode batch request"))
		return
	}
	switch n := len(req.Scenarios); {
	case n == 0:
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "batch request has no scenarios"))
		return
	case n > s.cfg.MaxBatch:
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "batch has %d scenarios, limit is %d", n, s.cfg.MaxBatch))
		return
	}

	items := make([]BatchItem, len(req.Scenarios))
	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(s.cfg.Concurrency)
	for i, raw := range req.Scenarios {
		g.Go(func() error {
			items[i].Index = i
			res, cached, err := s.compute(ctx, raw, flags)
			if err != nil {
				if ctxErr := r.Context().Err(); ctxErr != nil {
					return ctxErr
				}
				items[i].Error = errorBody(err)
				return nil
			}
			items[i].Result = res
			items[i].Cached = cached
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := BatchResponse{RequestID: requestIDFrom(r.Context()), Results: items}
	for _, it := range items {
		if it.Error != nil {
			resp.Failed++
		}
	}
	s.logger.Info("batch computed",
		"id", resp.RequestID,
		"scenarios", len(items),
		"failed", resp.Failed)
	writeJSON(w, http.StatusOK, resp)
}

// compute parses one JSON scenario and runs it.
func (s *Server) compute(ctx context.Context, body []byte, flags computeFlags) (*pipeline.Result, bool, error) {
	sc, err := scenario.Parse(body, scenario.FormatJSON)
	if err != nil {
		return nil, false, err
	}
	req, err := sc.Build(s.logger)
	if err != nil {
		return nil, false, err
	}
	req.Options.Trace = flags.trace

	hash := ""
	if !flags.noCache {
		if hash, err = sc.Hash(); err != nil {
			return nil, false, err
		}
	}
	return s.runner.ComputeWithCacheInfo(ctx, hash, req.Reference, req.Floating, req.Options)
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// =============================================================================
// Responses
// =============================================================================

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", requestIDFrom(r.Context()), "path", r.URL.Path, "err", err)
	} else {
		s.logger.Debug("request rejected", "id", requestIDFrom(r.Context()), "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, ErrorResponse{
		RequestID: requestIDFrom(r.Context()),
		Error:     *errorBody(err),
	})
}

// statusFor maps an error to its HTTP status by error code.
func statusFor(err error) int {
	switch {
	case stderrors.Is(err, context.Canceled):
		return 499
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidPlacement,
		errors.ErrCodeInvalidStrategy, errors.ErrCodeInvalidScenario:
		return http.StatusBadRequest
	case errors.ErrCodeUnsupported:
		return http.StatusUnsupportedMediaType
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeResetLimit, errors.ErrCodePlatform:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func errorBody(err error) *ErrorBody {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	return &ErrorBody{Code: code, Message: err.Error()}
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
