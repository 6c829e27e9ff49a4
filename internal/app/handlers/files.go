package handlers

import (
	"errors"
	"io"
	"net/http"
)

// Upper bound of multipart data kept in memory, the rest goes to temp files
const maxMemory = 32 << 20

type fileResponse struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

// Analyse uploaded file metadata
func (h Handlers) AnalyseFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		writeError(w, http.StatusBadRequest, "malformed multipart form")
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	file, header, err := r.FormFile("upfile")
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]string{"message": "No upload file sent"})
		return
	}
	defer file.Close()

	size, err := io.Copy(io.Discard, file)
	if err != nil {
		handleError(w, r, err, "")
		return
	}

	writeJSON(w, http.StatusOK, fileResponse{
		Name: header.Filename,
		Type: header.Header.Get("Content-Type"),
		Size: size,
	})
}
