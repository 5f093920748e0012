package storage

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolverURL(t *testing.T) {
	r := NewResolver("https://cdn.example.com/project-images/")

	tests := []struct {
		in, want string
	}{
		{"villa/1.jpg", "https://cdn.example.com/project-images/villa/1.jpg"},
		{"/villa/1.jpg", "https://cdn.example.com/project-images/villa/1.jpg"},
		{"https://images.example.org/a.png", "https://images.example.org/a.png"},
		{"HTTP://images.example.org/a.png", "HTTP://images.example.org/a.png"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.URL(tt.in), tt.in)
	}
}

func TestFallbackStable(t *testing.T) {
	r := NewResolver("/uploads")
	for i := -3; i < 20; i++ {
		assert.Equal(t, r.Fallback(i), r.Fallback(i))
		assert.NotEmpty(t, r.Fallback(i))
	}
	assert.Equal(t, r.Fallback(0), r.Fallback(len(fallbackImages)))
	assert.NotEqual(t, r.Fallback(0), r.Fallback(1))
}

func multipartFile(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["image"][0]
}

func TestSaveProjectImage(t *testing.T) {
	dir := t.TempDir()
	u := NewUploader(dir)

	path, err := u.SaveProjectImage("p1", multipartFile(t, "photo.JPG", []byte("jpeg-bytes")))
	require.NoError(t, err)
	assert.Regexp(t, `^p1/[0-9a-f-]{36}\.jpg$`, path)

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(path)))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))

	require.NoError(t, u.Remove(path))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(path)))
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, u.Remove("https://cdn.example.com/x.jpg"))
}

func TestSaveProjectImageRejects(t *testing.T) {
	u := NewUploader(t.TempDir())

	_, err := u.SaveProjectImage("p1", multipartFile(t, "script.exe", []byte("x")))
	assert.Error(t, err)

	_, err = u.SaveProjectImage("../etc", multipartFile(t, "a.png", []byte("x")))
	assert.Error(t, err)
}
