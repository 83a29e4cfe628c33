package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"blogHub/internal/auth"
)

// multipartOverhead leaves room for the form boundaries and headers around the file itself.
const multipartOverhead = 1 << 20

func (h *Handlers) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize+multipartOverhead)

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, fmt.Sprintf("File is too large (max %d MB)", h.Cfg.MaxUploadSize/(1024*1024)), http.StatusBadRequest)
		} else {
			WriteError(w, "Failed to process the upload", http.StatusBadRequest)
		}
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteError(w, "Image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	image, err := h.ImageService.Upload(r.Context(), auth.ActorFrom(r.Context()),
		header.Filename, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeMessage(w, "Image uploaded successfully", image, http.StatusCreated)
}

func (h *Handlers) DeleteImage(w http.ResponseWriter, r *http.Request) {
	publicID := mux.Vars(r)["publicId"]

	if err := h.ImageService.Delete(r.Context(), auth.ActorFrom(r.Context()), publicID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeMessage(w, "Image deleted successfully", nil, http.StatusOK)
}
