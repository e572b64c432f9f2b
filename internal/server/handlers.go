package server

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/leapstack-labs/datasmell/internal/loader"
	"github.com/leapstack-labs/datasmell/internal/state"
	"github.com/leapstack-labs/datasmell/pkg/core"
	"github.com/leapstack-labs/datasmell/pkg/detect"
	"github.com/leapstack-labs/datasmell/pkg/smell"
)

// defaultRunLimit is used when GET /api/runs has no limit.
const defaultRunLimit = 50

// Handlers serves the API endpoints.
type Handlers struct {
	engine    *detect.Engine
	store     state.Store
	loadOpts  loader.Options
	maxUpload int64
	version   string
	logger    *slog.Logger
	metrics   *metrics
	gatherer  prometheus.Gatherer
}

// NewHandlers creates the API handlers.
func NewHandlers(cfg Config, m *metrics) *Handlers {
	return &Handlers{
		engine:    cfg.Engine,
		store:     cfg.Store,
		loadOpts:  cfg.LoaderOptions,
		maxUpload: cfg.MaxUploadBytes,
		version:   cfg.Version,
		logger:    cfg.Logger,
		metrics:   m,
		gatherer:  cfg.Gatherer,
	}
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version,omitempty"`
	Checks    int       `json:"checks"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// DetectResponse is the body of a detection or stored run lookup.
type DetectResponse struct {
	Run    *state.Run     `json:"run,omitempty"`
	Report *detect.Report `json:"report"`
}

// Health reports liveness.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, HealthResponse{
		Status:    "ok",
		Version:   h.version,
		Checks:    h.engine.Registry().Count(),
		Timestamp: time.Now().UTC(),
	})
}

// ListSmells lists the registered checks.
func (h *Handlers) ListSmells(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.engine.Registry().Infos())
}

// GetSmell describes one registered check.
func (h *Handlers) GetSmell(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	st, _ := core.ParseDataSmellType(id)
	def, err := h.engine.Registry().Lookup(st)
	if err != nil {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, ErrorResponse{Error: (&core.UnknownSmellError{Name: id}).Error()})
		return
	}
	render.JSON(w, r, smell.InfoFor(def))
}

// DetectDocument evaluates a dataset document sent as JSON or YAML.
//
// Query parameters: smell (repeatable or comma separated), column (name or
// name:smell), save=false to skip storing the run.
func (h *Handlers) DetectDocument(w http.ResponseWriter, r *http.Request) {
	req, err := requestFromQuery(r)
	if err != nil {
		h.error(w, r, err)
		return
	}

	doc, err := loader.ParseDocument(http.MaxBytesReader(w, r.Body, h.maxUpload))
	if err != nil {
		h.error(w, r, badRequest(err))
		return
	}
	ds, err := doc.Dataset("request")
	if err != nil {
		h.error(w, r, badRequest(err))
		return
	}
	h.detect(w, r, ds, req, "api")
}

// DetectUpload evaluates a dataset file sent as the multipart field "file".
// The file name's extension selects the format.
func (h *Handlers) DetectUpload(w http.ResponseWriter, r *http.Request) {
	req, err := requestFromQuery(r)
	if err != nil {
		h.error(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	file, header, err := r.FormFile("file")
	if err != nil {
		h.error(w, r, badRequest(fmt.Errorf("missing multipart file: %w", err)))
		return
	}
	defer func() { _ = file.Close() }()

	name := filepath.Base(header.Filename)
	if _, err := loader.DetectFormat(name); err != nil {
		h.error(w, r, err)
		return
	}

	dir, err := os.MkdirTemp("", "datasmell-upload-")
	if err != nil {
		h.error(w, r, err)
		return
	}
	defer func() { _ = os.RemoveAll(dir) }()

	path := filepath.Join(dir, name)
	if err := copyToFile(path, file); err != nil {
		h.error(w, r, err)
		return
	}

	ds, err := loader.Load(r.Context(), path, h.loadOpts)
	if err != nil {
		h.error(w, r, badRequest(err))
		return
	}
	h.detect(w, r, ds, req, name)
}

func (h *Handlers) detect(w http.ResponseWriter, r *http.Request, ds *core.Dataset, req detect.Request, source string) {
	report, err := h.engine.DetectContext(r.Context(), ds, req)
	if err != nil {
		h.metrics.observeError()
		h.error(w, r, err)
		return
	}
	h.metrics.observeReport(report)

	resp := DetectResponse{Report: report}
	if h.store != nil && r.URL.Query().Get("save") != "false" {
		run, err := h.store.SaveReport(r.Context(), ds, report, source)
		if err != nil {
			h.error(w, r, fmt.Errorf("failed to save run: %w", err))
			return
		}
		resp.Run = run
	}
	render.JSON(w, r, resp)
}

// ListRuns lists stored runs, most recent first.
func (h *Handlers) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit := defaultRunLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			h.error(w, r, badRequest(fmt.Errorf("invalid limit %q", v)))
			return
		}
		limit = n
	}

	runs, err := h.store.ListRuns(r.Context(), limit)
	if err != nil {
		h.error(w, r, err)
		return
	}
	if runs == nil {
		runs = []*state.Run{}
	}
	render.JSON(w, r, runs)
}

// GetRun returns a stored run with its report.
func (h *Handlers) GetRun(w http.ResponseWriter, r *http.Request) {
	run, report, err := state.LoadReport(r.Context(), h.store, chi.URLParam(r, "id"))
	if err != nil {
		h.error(w, r, err)
		return
	}
	render.JSON(w, r, DetectResponse{Run: run, Report: report})
}

// DeleteRun removes a stored run.
func (h *Handlers) DeleteRun(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteRun(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.error(w, r, err)
		return
	}
	render.NoContent(w, r)
}

// requestFromQuery builds a detection request from query parameters.
func requestFromQuery(r *http.Request) (detect.Request, error) {
	q := r.URL.Query()
	smells, err := detect.ParseSmells(splitValues(q["smell"]))
	if err != nil {
		return detect.Request{}, err
	}
	columns, targets, err := detect.ParseSelection(splitValues(q["column"]))
	if err != nil {
		return detect.Request{}, err
	}
	return detect.Request{Smells: smells, Columns: columns, Targets: targets}, nil
}

func splitValues(values []string) []string {
	var out []string
	for _, v := range values {
		out = append(out, strings.Split(v, ",")...)
	}
	return out
}

func copyToFile(path string, src io.Reader) error {
	f, err := os.Create(path) //nolint:gosec // path is inside a fresh temp dir
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, src); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to store upload: %w", err)
	}
	return f.Close()
}

// badRequestError marks client input errors.
type badRequestError struct{ err error }

func (e *badRequestError) Error() string { return e.err.Error() }
func (e *badRequestError) Unwrap() error { return e.err }

func badRequest(err error) error { return &badRequestError{err: err} }

// error writes err with the status its kind maps to.
func (h *Handlers) error(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", slog.String("path", r.URL.Path), slog.String("error", err.Error()))
	}
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	var (
		maxBytes    *http.MaxBytesError
		unsupported *loader.UnsupportedFormatError
		bad         *badRequestError
	)
	switch {
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, state.ErrRunNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrUnknownSmell),
		errors.Is(err, core.ErrUnsupportedColumnType),
		errors.Is(err, core.ErrConfiguration),
		errors.As(err, &bad):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
