package controllers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"munchmarket/blob"
)

// FilesController serves uploaded images back out of blob storage
type FilesController struct {
	Storage blob.Downloader
	Logger  *zap.Logger
}

// NewFilesController creates a new FilesController
func NewFilesController(storage blob.Downloader, logger *zap.Logger) *FilesController {
	return &FilesController{Storage: storage, Logger: logger}
}

// Download streams a stored file directly to the response. A missing
// file fails before any byte is written, so the 404 is still clean.
func (fc *FilesController) Download(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	w.Header().Set("Cache-Control", "public, max-age=86400")
	n, err := fc.Storage.Download(w, id)
	if err != nil {
		fc.Logger.Warn("file download failed",
			zap.String("id", id), zap.Int64("written", n), zap.Error(err))
		if n == 0 {
			http.Error(w, "File not found", http.StatusNotFound)
		}
		return
	}
}
