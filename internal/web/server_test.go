package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letterpack/letterpack/internal/render/record"
	"github.com/letterpack/letterpack/internal/settings"
	"github.com/letterpack/letterpack/internal/storage"
	"github.com/letterpack/letterpack/pkg/api"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, sink storage.Sink) *Server {
	t.Helper()
	gen := api.NewWithOptions(api.DefaultOptions()).
		WithOption(api.WithBackend(api.BackendRecord)).
		WithOption(api.WithoutSystemFonts())
	return NewServer(Config{
		Server:    settings.Default().Server,
		Generator: gen,
		Sink:      sink,
	})
}

func validForm() url.Values {
	return url.Values{
		"to_postal":     {"123-4567"},
		"to_address1":   {"東京都千代田区1-1"},
		"to_name":       {"山田 太郎"},
		"from_postal":   {"987-6543"},
		"from_address1": {"大阪府大阪市2-2"},
		"from_name":     {"田中 花子"},
	}
}

func postForm(s *Server, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/labels", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func postCSV(t *testing.T, s *Server, csv string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("csv", "labels.csv")
	require.NoError(t, err)
	_, err = io.WriteString(part, csv)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/labels/batch", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func fieldNames(resp ErrorResponse) []string {
	var out []string
	for _, f := range resp.Fields {
		out = append(out, f.Field)
	}
	return out
}

func TestIndexAndHealth(t *testing.T) {
	s := newTestServer(t, nil)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "お届け先")
	assert.Contains(t, w.Body.String(), `value="center" checked`)

	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCreateLabel(t *testing.T) {
	s := newTestServer(t, nil)

	w := postForm(s, validForm())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="label.json"`)

	doc, err := record.Load(w.Body)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Pages)
	assert.Equal(t, 1, doc.CountText("山田 太郎"))
	assert.Equal(t, 1, doc.CountText("様"))
}

func TestCreateLabelGrid(t *testing.T) {
	s := newTestServer(t, nil)
	form := validForm()
	form.Set("layout", "grid_4up")

	w := postForm(s, form)
	require.Equal(t, http.StatusOK, w.Code)
	doc, err := record.Load(w.Body)
	require.NoError(t, err)
	assert.Equal(t, 4, doc.CountText("田中 花子"))
}

func TestCreateLabelValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(url.Values)
		fields []string
	}{
		{"missing fields", func(v url.Values) {
			v.Del("to_postal")
			v.Del("from_name")
		}, []string{"to_postal", "from_name"}},
		{"blank name", func(v url.Values) { v.Set("to_name", "   ") }, []string{"to_name"}},
		{"unknown layout", func(v url.Values) { v.Set("layout", "spiral") }, []string{"layout"}},
	}

	s := newTestServer(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(form)

			w := postForm(s, form)
			require.Equal(t, http.StatusBadRequest, w.Code)
			resp := errorBody(t, w)
			assert.ElementsMatch(t, tt.fields, fieldNames(resp))
			assert.NotEmpty(t, resp.RequestID)
		})
	}
}

const csvHeader = "to_postal,to_address1,to_name,from_postal,from_address1,from_name\n"

func TestBatch(t *testing.T) {
	s := newTestServer(t, nil)
	csv := csvHeader + strings.Repeat("1234567,A,B,7654321,C,D\n", 5)

	w := postCSV(t, s, csv)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "5", w.Header().Get("X-Label-Count"))
	assert.Equal(t, "2", w.Header().Get("X-Page-Count"))

	doc, err := record.Load(w.Body)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Pages)
}

func TestBatchErrors(t *testing.T) {
	s := newTestServer(t, nil)

	t.Run("invalid rows", func(t *testing.T) {
		w := postCSV(t, s, csvHeader+"1234567,A,B,7654321,C,D\n,A,B,7654321,C,D\n")
		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := errorBody(t, w)
		require.Len(t, resp.Rows, 1)
		assert.Equal(t, 3, resp.Rows[0].Row)
		assert.Equal(t, "to", resp.Rows[0].Side)
	})

	t.Run("missing columns", func(t *testing.T) {
		w := postCSV(t, s, "to_postal,to_name\n1,2\n")
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, fieldNames(errorBody(t, w)), "from_postal")
	})

	t.Run("no file", func(t *testing.T) {
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/labels/batch", nil))
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, []string{"csv"}, fieldNames(errorBody(t, w)))
	})
}

func TestArchive(t *testing.T) {
	sink, err := storage.NewLocalSink(t.TempDir())
	require.NoError(t, err)
	s := newTestServer(t, sink)

	w := postForm(s, validForm())
	require.Equal(t, http.StatusOK, w.Code)
	loc := w.Header().Get("X-Archive-Location")
	require.NotEmpty(t, loc)
	assert.FileExists(t, loc)
}

func TestMetrics(t *testing.T) {
	s := newTestServer(t, nil)
	postForm(s, validForm())

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `letterpack_labels_rendered_total{mode="center"} 1`)
	assert.Contains(t, body, `letterpack_http_requests_total{method="POST",path="/labels",status_code="200"} 1`)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s := newTestServer(t, nil)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
