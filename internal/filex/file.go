// Package filex contains small filesystem helpers for directories the client
// owns (data dir, report downloads).
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates dir (and parents) if missing and returns its path.
func EnsureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return dir, nil
}

// EnsureSubDir creates a subdirectory of the current working directory
// if missing and returns its absolute path.
func EnsureSubDir(dirName string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}
	return EnsureDir(filepath.Join(cwd, dirName))
}

// IsImageFile reports whether path looks like an uploadable X-ray image:
// png, jpg/jpeg, or a DICOM file (.dcm / .dicom).
func IsImageFile(path string) bool {
	switch ext := filepath.Ext(path); ext {
	case ".png", ".jpg", ".jpeg", ".dcm", ".dicom":
		return true
	default:
		return false
	}
}
