package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/helojet/helojet-server/internal/http/response"
)

// handleUploadImage adds a multipart image upload to a draft as an inline
// data URI. Expects the file in the "file" field.
func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, "id")

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.BadRequest(w, "Image is larger than 10 MB.", s.logger)
			return
		}
		response.BadRequest(w, "Invalid upload.", s.logger)
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll() //nolint:errcheck // temp files only
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Missing file field.", s.logger)
		return
	}
	defer file.Close() //nolint:errcheck // read-only

	data, err := io.ReadAll(file)
	if err != nil {
		s.logger.Error("Failed to read upload", "error", err, "draft_id", draftID)
		response.InternalError(w, "Failed to read upload.", s.logger)
		return
	}

	result, err := s.services.Editor.AddImageUpload(r.Context(), draftID, header.Filename, data)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, result, s.logger)
}
