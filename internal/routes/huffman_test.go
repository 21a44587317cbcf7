package routes

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kelbwah/huffmin/internal/stats"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func newTestHandlers(t *testing.T) *Handlers {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stats.json")
	return NewHandlers(stats.NewStore(path))
}

func TestCompressDecompressRoundTrip(t *testing.T) {
	e := echo.New()
	h := newTestHandlers(t)

	body, contentType := multipartBody(t, "file", "sample.txt", []byte("hello world! hello world!"))
	req := httptest.NewRequest(http.MethodPost, "/compress", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.CompressFile(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	compressed := rec.Body.Bytes()
	assert.NotEmpty(t, compressed)

	body2, contentType2 := multipartBody(t, "file", "sample.txt.huff", compressed)
	req2 := httptest.NewRequest(http.MethodPost, "/decompress", body2)
	req2.Header.Set(echo.HeaderContentType, contentType2)
	rec2 := httptest.NewRecorder()
	c2 := e.NewContext(req2, rec2)

	require.NoError(t, h.DecompressFile(c2))
	assert.Equal(t, http.StatusOK, rec2.Code)
	assert.Equal(t, []byte("hello world! hello world!"), rec2.Body.Bytes())
}

func TestCompressEmptyFileRejected(t *testing.T) {
	e := echo.New()
	h := newTestHandlers(t)

	body, contentType := multipartBody(t, "file", "empty.txt", nil)
	req := httptest.NewRequest(http.MethodPost, "/compress", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.CompressFile(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestSimulateJSON(t *testing.T) {
	e := echo.New()
	h := newTestHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/simulate", strings.NewReader(`{"text":"abcabcabcabc"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Simulate(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "original_size")
}

func TestStatsRoundTrip(t *testing.T) {
	e := echo.New()
	h := newTestHandlers(t)

	require.NoError(t, h.Stats.RecordCompress(10, 4))

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, h.GetStats(c))
	assert.Contains(t, rec.Body.String(), `"compressed":1`)

	resetReq := httptest.NewRequest(http.MethodPost, "/stats/reset", nil)
	resetRec := httptest.NewRecorder()
	resetCtx := e.NewContext(resetReq, resetRec)
	require.NoError(t, h.ResetStats(resetCtx))

	after := h.Stats.Load()
	assert.Zero(t, after.Compressed)
}

func TestDecompressUnknownFlagIsUnprocessable(t *testing.T) {
	e := echo.New()
	h := newTestHandlers(t)

	garbage := []byte{0x7F, 1, 2, 3}
	body, contentType := multipartBody(t, "file", "garbage.huff", garbage)
	req := httptest.NewRequest(http.MethodPost, "/decompress", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.DecompressFile(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Code)
}
