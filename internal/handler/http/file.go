package http

import (
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/handler/http/response"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/storage"
	"github.com/go-chi/chi/v5"
)

// FileHandler serves archived artifacts such as payroll exports
type FileHandler interface {
	Download(w http.ResponseWriter, r *http.Request)
}

type fileHandlerImpl struct {
	fileStorage storage.FileStorage
}

func NewFileHandler(fileStorage storage.FileStorage) FileHandler {
	return &fileHandlerImpl{fileStorage: fileStorage}
}

func (h *fileHandlerImpl) Download(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	if key == "" {
		response.BadRequest(w, "File path is required", nil)
		return
	}

	file, err := h.fileStorage.Open(r.Context(), key)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer file.Close()

	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename=\""+path.Base(key)+"\"")
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, file); err != nil {
		slog.Error("failed to stream file", "key", key, "error", err)
	}
}
