package httpapi

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestUploadStoresImageUnderRandomName(t *testing.T) {
	dir := t.TempDir()
	api := &api{logger: slog.Default(), uploadDir: dir}

	body, contentType := multipartBody(t, "file", "listing.png", append(pngHeader, bytes.Repeat([]byte{0}, 64)...))
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/uploads", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	api.handleUpload(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("unexpected status: %d body=%s", rr.Code, rr.Body)
	}
	var got uploadResponse
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Name == "listing.png" {
		t.Fatalf("client filename reused on disk")
	}
	if !strings.HasSuffix(got.Name, ".png") {
		t.Fatalf("unexpected extension: %q", got.Name)
	}
	if _, err := os.Stat(filepath.Join(dir, got.Name)); err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if !strings.HasPrefix(got.URL, "/uploads/") {
		t.Fatalf("unexpected url: %q", got.URL)
	}
}

func TestUploadRejectsNonImage(t *testing.T) {
	api := &api{logger: slog.Default(), uploadDir: t.TempDir()}

	body, contentType := multipartBody(t, "file", "notes.txt", []byte("just some text"))
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/uploads", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	api.handleUpload(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
}

func TestUploadGetRejectsTraversal(t *testing.T) {
	api := &api{uploadDir: t.TempDir()}

	for _, name := range []string{"..%2Fsecret", ".hidden", "a/b.png"} {
		req := httptest.NewRequest(http.MethodGet, "/uploads/x", nil)
		req.SetPathValue("name", name)
		rr := httptest.NewRecorder()
		api.handleUploadGet(rr, req)

		if rr.Code != http.StatusNotFound {
			t.Fatalf("name %q: unexpected status %d", name, rr.Code)
		}
	}
}
