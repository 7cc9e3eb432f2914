// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"otusite/internal/storage"
)

const (
	// maxUploadSize is the maximum accepted file size (10 MiB).
	maxUploadSize = 10 << 20

	// multipartOverhead leaves room for boundaries and part headers.
	multipartOverhead = 64 << 10
)

// uploadTypes maps accepted extensions to the content type they are stored with.
var uploadTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".webm": "video/webm",
}

// Uploads handles admin file uploads into a storage backend.
type Uploads struct {
	backend storage.Backend
	now     func() time.Time
}

// NewUploads creates the upload handler for the given backend.
func NewUploads(backend storage.Backend) *Uploads {
	return &Uploads{backend: backend, now: time.Now}
}

// Upload accepts a single multipart "file" field. The file is checked for
// size and type before anything is written to the backend.
func (u *Uploads) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+multipartOverhead)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			writeError(w, http.StatusRequestEntityTooLarge, "File too large. Maximum size is 10 MB.")
			return
		}
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		writeError(w, http.StatusRequestEntityTooLarge, "File too large. Maximum size is 10 MB.")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	contentType, ok := uploadTypes[ext]
	if !ok || !declaredTypeAllowed(header.Header.Get("Content-Type")) {
		writeError(w, http.StatusUnsupportedMediaType, "Invalid file type. Only images and videos are allowed.")
		return
	}

	name := u.filename(ext)
	url, err := u.backend.Save(r.Context(), name, contentType, file, header.Size)
	if err != nil {
		slog.Error("upload save failed", "error", err, "name", name)
		writeError(w, http.StatusInternalServerError, "Upload failed")
		return
	}

	slog.Info("file uploaded", "name", name, "size", header.Size, "type", contentType)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"url":      url,
		"filename": name,
	})
}

// filename builds a collision-resistant stored name: <unix-millis>-<random><ext>.
func (u *Uploads) filename(ext string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%d-%s%s", u.now().UnixMilli(), id[:12], ext)
}

// declaredTypeAllowed accepts a missing or generic part type, or one of
// the upload types.
func declaredTypeAllowed(declared string) bool {
	if declared == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(declared)
	if err != nil {
		return false
	}
	if mediaType == "application/octet-stream" {
		return true
	}
	for _, t := range uploadTypes {
		if t == mediaType {
			return true
		}
	}
	return false
}
