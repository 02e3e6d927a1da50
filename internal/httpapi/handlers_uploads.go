package httpapi

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"primehavenwebserver/internal/domain"
)

const maxUploadBytes = 10 << 20

var uploadExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type uploadResponse struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// handleUpload stores an image under a random name and returns the path
// it will be served from. The client-supplied filename is never used on
// disk; the extension comes from sniffing the content.
func (a *api) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, _, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			WriteError(w, http.StatusRequestEntityTooLarge, "too_large", "file exceeds 10 MB")
			return
		}
		WriteDomainError(w, domain.NewValidationError(map[string]string{"file": "required"}))
		return
	}
	defer file.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		WriteDomainError(w, err)
		return
	}
	head = head[:n]

	ext, ok := uploadExtensions[http.DetectContentType(head)]
	if !ok {
		WriteDomainError(w, domain.NewValidationError(map[string]string{"file": "must be a jpeg, png, webp, or gif image"}))
		return
	}

	if err := os.MkdirAll(a.uploadDir, 0o755); err != nil {
		a.logger.Error("create upload dir failed", "err", err)
		WriteDomainError(w, err)
		return
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(a.uploadDir, name))
	if err != nil {
		a.logger.Error("create upload file failed", "err", err)
		WriteDomainError(w, err)
		return
	}
	defer dst.Close()

	if _, err := dst.Write(head); err != nil {
		WriteDomainError(w, err)
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			_ = os.Remove(dst.Name())
			WriteError(w, http.StatusRequestEntityTooLarge, "too_large", "file exceeds 10 MB")
			return
		}
		WriteDomainError(w, err)
		return
	}

	url := path.Join("/uploads", name)
	if a.publicURL != nil {
		u := *a.publicURL
		u.Path = url
		url = u.String()
	}

	WriteJSON(w, http.StatusCreated, uploadResponse{Name: name, URL: url})
}

// handleUploadGet serves a stored file by name. Names with path
// separators or a leading dot are rejected so the lookup can never
// escape the upload directory.
func (a *api) handleUploadGet(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" || strings.ContainsAny(name, "/\\") || strings.HasPrefix(name, ".") {
		WriteError(w, http.StatusNotFound, "not_found", "not found")
		return
	}

	p := filepath.Join(a.uploadDir, name)
	if _, err := os.Stat(p); err != nil {
		WriteError(w, http.StatusNotFound, "not_found", "not found")
		return
	}
	http.ServeFile(w, r, p)
}
