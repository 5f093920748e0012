// Package storage: публичные URL картинок и загрузка файлов из админки.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	MaxFileSize = 5 * 1024 * 1024
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// фиксированная ротация заглушек; выбор по индексу, чтобы вёрстка не прыгала между рендерами
var fallbackImages = []string{
	"/static/img/fallback/interior-1.svg",
	"/static/img/fallback/interior-2.svg",
	"/static/img/fallback/interior-3.svg",
	"/static/img/fallback/interior-4.svg",
	"/static/img/fallback/interior-5.svg",
	"/static/img/fallback/interior-6.svg",
}

type Resolver struct {
	BaseURL string
}

func NewResolver(baseURL string) *Resolver {
	return &Resolver{BaseURL: strings.TrimRight(baseURL, "/")}
}

// URL превращает путь хранилища в публичный адрес; абсолютные URL отдаются как есть.
func (r *Resolver) URL(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if IsAbsolute(path) {
		return path
	}
	return r.BaseURL + "/" + strings.TrimLeft(path, "/")
}

// Fallback детерминирован: один и тот же индекс даёт одну и ту же картинку.
func (r *Resolver) Fallback(index int) string {
	if index < 0 {
		index = -index
	}
	return fallbackImages[index%len(fallbackImages)]
}

func IsAbsolute(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Uploader кладёт файлы в каталог uploads/<projectID>/.
type Uploader struct {
	Dir string
}

func NewUploader(dir string) *Uploader {
	return &Uploader{Dir: dir}
}

// SaveProjectImage сохраняет файл и возвращает путь относительно корня хранилища.
func (u *Uploader) SaveProjectImage(projectID string, fh *multipart.FileHeader) (string, error) {
	if fh.Size > MaxFileSize {
		return "", fmt.Errorf("файл %s превышает максимальный размер 5MB", fh.Filename)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("файл %s имеет недопустимый формат, разрешены JPG, PNG и WEBP", fh.Filename)
	}
	if strings.ContainsAny(projectID, `/\.`) || projectID == "" {
		return "", fmt.Errorf("invalid project id %q", projectID)
	}

	dir := filepath.Join(u.Dir, projectID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return projectID + "/" + name, nil
}

// Remove удаляет локальный файл; абсолютные URL не трогаются.
func (u *Uploader) Remove(path string) error {
	if path == "" || IsAbsolute(path) || strings.Contains(path, "..") {
		return nil
	}
	err := os.Remove(filepath.Join(u.Dir, filepath.FromSlash(path)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
