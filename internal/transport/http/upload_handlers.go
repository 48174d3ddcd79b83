package httptransport

import (
	"errors"
	"net/http"

	"foxform/internal/httpx"
	"foxform/internal/upload"
)

type UploadHandlers struct {
	store *upload.Store
}

func NewUploadHandlers(store *upload.Store) *UploadHandlers {
	return &UploadHandlers{store: store}
}

// Status lets clients probe whether the proxy is wired before offering file
// questions a real upload path.
func (h *UploadHandlers) Status(w http.ResponseWriter, _ *http.Request) {
	if h.store == nil || !h.store.Configured() {
		httpx.JSON(w, http.StatusOK, uploadNotConfigured{
			Configured: false,
			Error:      "Upload storage is not configured; embed files as data URLs instead",
		})
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"configured": true,
		"max_size":   h.store.MaxSize(),
	})
}

func (h *UploadHandlers) Upload(w http.ResponseWriter, r *http.Request) {
	if h.store == nil || !h.store.Configured() {
		httpx.JSON(w, http.StatusServiceUnavailable, uploadNotConfigured{
			Configured: false,
			Error:      "Upload storage is not configured; embed files as data URLs instead",
		})
		return
	}

	if err := r.ParseMultipartForm(h.store.MaxSize()); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid multipart request")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	info, err := h.store.Save(header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		if errors.Is(err, upload.ErrNotConfigured) {
			httpx.Error(w, http.StatusServiceUnavailable, "Upload storage is not configured")
			return
		}
		if errors.Is(err, upload.ErrTooLarge) {
			httpx.Error(w, http.StatusRequestEntityTooLarge, "File is too large")
			return
		}
		writeError(w, "Upload", err)
		return
	}
	httpx.JSON(w, http.StatusOK, info)
}
