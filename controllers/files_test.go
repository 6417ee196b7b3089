package controllers_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"munchmarket/controllers"
)

type fakeDownloader struct {
	data []byte
	err  error
}

func (f *fakeDownloader) Download(w io.Writer, _ string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	n, err := w.Write(f.data)
	return int64(n), err
}

func newFilesRouter(d *fakeDownloader) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/files/{id}", controllers.NewFilesController(d, zap.NewNop()).Download).Methods("GET")
	return router
}

func TestDownloadStreamsFileBody(t *testing.T) {
	data := []byte("png bytes")
	router := newFilesRouter(&fakeDownloader{data: data})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/files/abc123", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, data, w.Body.Bytes())
	assert.Equal(t, "public, max-age=86400", w.Header().Get("Cache-Control"))
}

func TestDownloadMissingFileIs404(t *testing.T) {
	router := newFilesRouter(&fakeDownloader{err: errors.New("file with given parameters not found")})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/files/abc123", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
