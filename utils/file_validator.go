package utils

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/princinho/pepinterview/config"
)

type FileValidator struct {
	allowedExt  map[string]bool
	allowedMime map[string]bool
	maxSize     int64
}

func NewFileValidator(cfg config.StorageConfig) *FileValidator {
	allowedExt := make(map[string]bool)
	for _, ext := range cfg.AllowedExts {
		allowedExt[ext] = true
	}

	allowedMime := make(map[string]bool)
	for _, m := range cfg.AllowedMimes {
		allowedMime[m] = true
	}

	sizeMB := cfg.MaxUploadMB
	if sizeMB <= 0 {
		sizeMB = 5
	}

	return &FileValidator{
		allowedExt:  allowedExt,
		allowedMime: allowedMime,
		maxSize:     int64(sizeMB) << 20,
	}
}

// ValidateFile checks size, extension and the sniffed content type, and
// returns the detected MIME type.
func (v *FileValidator) ValidateFile(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Size > v.maxSize {
		return "", fmt.Errorf("file too large (max %d MB)", v.maxSize>>20)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !v.allowedExt[ext] {
		return "", fmt.Errorf("invalid file extension")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil || n == 0 {
		return "", fmt.Errorf("failed to read file header")
	}

	detected := strings.ToLower(http.DetectContentType(buffer[:n]))
	if i := strings.Index(detected, ";"); i >= 0 {
		detected = strings.TrimSpace(detected[:i])
	}
	if !v.allowedMime[detected] {
		return "", fmt.Errorf("invalid file type")
	}

	return detected, nil
}
