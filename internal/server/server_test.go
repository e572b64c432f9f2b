package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/datasmell/internal/state"
	"github.com/leapstack-labs/datasmell/internal/testutil"
	"github.com/leapstack-labs/datasmell/pkg/detect"
	"github.com/leapstack-labs/datasmell/pkg/smell"
	_ "github.com/leapstack-labs/datasmell/pkg/smell/checks" // register checks
)

const customersJSON = `{
  "id": "customers",
  "columns": [
    {"name": "name", "values": ["Ada", " Grace", "Linus  T", "UNK", "Barbara"]},
    {"name": "code", "values": [1, 999, 999, 4, 5]}
  ]
}`

const customersYAML = `id: customers
columns:
  - name: name
    values: ["Ada", " Grace", "Barbara"]
`

func setupServer(t *testing.T, withStore bool) (*Server, state.Store) {
	t.Helper()
	logger := testutil.NewTestLogger(t)

	cfg := Config{
		Version: "test",
		Engine:  detect.New(smell.Default(), detect.WithLogger(logger)),
		Logger:  logger,
	}
	var store state.Store
	if withStore {
		s := state.NewSQLiteStore(logger)
		require.NoError(t, s.Open(context.Background(), ":memory:"))
		t.Cleanup(func() { _ = s.Close() })
		cfg.Store = s
		store = s
	}

	srv, err := New(cfg)
	require.NoError(t, err)
	return srv, store
}

func do(t *testing.T, h http.Handler, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestNew_RequiresEngine(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	srv, _ := setupServer(t, false)

	rec := do(t, srv.Handler(), http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[HealthResponse](t, rec)
	assert.Equal(t, "ok", got.Status)
	assert.Equal(t, "test", got.Version)
	assert.Equal(t, smell.Default().Count(), got.Checks)
}

func TestSmells(t *testing.T) {
	srv, _ := setupServer(t, false)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantBody   string
	}{
		{"list", "/api/smells", http.StatusOK, `"id":"spacing"`},
		{"one by id", "/api/smells/spacing", http.StatusOK, `"name":"Spacing Smell"`},
		{"one by underscore id", "/api/smells/dummy_value", http.StatusOK, `"id":"dummy-value"`},
		{"unknown", "/api/smells/nope", http.StatusNotFound, `unknown smell`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv.Handler(), http.MethodGet, tt.target, "")
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestDetectDocument(t *testing.T) {
	srv, store := setupServer(t, true)

	rec := do(t, srv.Handler(), http.MethodPost, "/api/detect?smell=spacing&column=name", customersJSON)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := decode[DetectResponse](t, rec)
	require.NotNil(t, got.Run)
	assert.Equal(t, "customers", got.Report.DatasetID)
	require.Len(t, got.Report.Results, 1)

	res := got.Report.Results[0]
	assert.Equal(t, "name", res.ColumnName)
	assert.Equal(t, 2, res.UnexpectedCount)
	assert.False(t, res.Success)

	runs, err := store.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, got.Run.ID, runs[0].ID)
	assert.Equal(t, "api", runs[0].Source)
}

func TestDetectDocument_NoSave(t *testing.T) {
	srv, store := setupServer(t, true)

	rec := do(t, srv.Handler(), http.MethodPost, "/api/detect?save=false", customersJSON)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decode[DetectResponse](t, rec).Run)

	runs, err := store.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestDetectDocument_Errors(t *testing.T) {
	srv, _ := setupServer(t, false)

	tests := []struct {
		name       string
		target     string
		body       string
		wantStatus int
	}{
		{"unknown smell", "/api/detect?smell=nope", customersJSON, http.StatusBadRequest},
		{"unknown column", "/api/detect?column=zzz", customersJSON, http.StatusBadRequest},
		{"unsupported target", "/api/detect?column=code:spacing", customersJSON, http.StatusBadRequest},
		{"empty body", "/api/detect", "", http.StatusBadRequest},
		{"no columns", "/api/detect", `{"id": "x", "columns": []}`, http.StatusBadRequest},
		{"unknown field", "/api/detect", `{"rows": []}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv.Handler(), http.MethodPost, tt.target, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.NotEmpty(t, decode[ErrorResponse](t, rec).Error)
		})
	}
}

func TestDetectUpload(t *testing.T) {
	srv, _ := setupServer(t, false)

	upload := func(filename, content string) *httptest.ResponseRecorder {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/detect/upload?smell=spacing", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		return rec
	}

	t.Run("yaml document", func(t *testing.T) {
		rec := upload("customers.yaml", customersYAML)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		got := decode[DetectResponse](t, rec)
		assert.Equal(t, "customers", got.Report.DatasetID)
		assert.NotEmpty(t, got.Report.Results)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		rec := upload("customers.xlsx", "x")
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})
}

func TestDetectUpload_MissingFile(t *testing.T) {
	srv, _ := setupServer(t, false)
	rec := do(t, srv.Handler(), http.MethodPost, "/api/detect/upload", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRuns(t *testing.T) {
	srv, _ := setupServer(t, true)
	h := srv.Handler()

	created := decode[DetectResponse](t, do(t, h, http.MethodPost, "/api/detect", customersJSON))
	require.NotNil(t, created.Run)
	id := created.Run.ID

	rec := do(t, h, http.MethodGet, "/api/runs/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	runs := decode[[]state.Run](t, rec)
	require.Len(t, runs, 1)
	assert.Equal(t, id, runs[0].ID)

	rec = do(t, h, http.MethodGet, "/api/runs/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[DetectResponse](t, rec)
	assert.Equal(t, created.Report.Statistics, got.Report.Statistics)
	assert.Len(t, got.Report.Results, len(created.Report.Results))

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/runs/?limit=x", "").Code)

	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/api/runs/"+id, "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodDelete, "/api/runs/"+id, "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/runs/"+id, "").Code)
}

func TestRuns_DisabledWithoutStore(t *testing.T) {
	srv, _ := setupServer(t, false)
	assert.Equal(t, http.StatusNotFound, do(t, srv.Handler(), http.MethodGet, "/api/runs/", "").Code)
}

func TestMetrics(t *testing.T) {
	srv, _ := setupServer(t, false)
	h := srv.Handler()

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/detect?smell=spacing", customersJSON).Code)
	require.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/detect?column=zzz", customersJSON).Code)

	rec := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `datasmell_detections_total{outcome="smelly"} 1`)
	assert.Contains(t, body, `datasmell_detections_total{outcome="error"} 1`)
	assert.Contains(t, body, `datasmell_failed_checks_total{smell="spacing"} 1`)
	assert.Contains(t, body, `datasmell_http_requests_total{code="200",method="POST",route="/api/detect"} 1`)
}

func TestCORS(t *testing.T) {
	logger := testutil.NewTestLogger(t)
	srv, err := New(Config{
		Engine:         detect.New(nil),
		Logger:         logger,
		AllowedOrigins: []string{"http://localhost:3000"},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServeListener_ShutsDownOnCancel(t *testing.T) {
	srv, _ := setupServer(t, false)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ServeListener(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
