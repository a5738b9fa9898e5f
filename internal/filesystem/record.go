package filesystem

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/IvanShishkin/filehound/pkg/models"
)

// NewFileRecord builds a record for the entry at path
func NewFileRecord(path string, info os.FileInfo, isSymlink bool) *models.FileRecord {
	name := filepath.Base(path)

	size := info.Size()
	if info.IsDir() {
		size = 0
	}

	return &models.FileRecord{
		Path:      path,
		Name:      name,
		Size:      size,
		Extension: strings.ToLower(GetExtension(name)),
		ModTime:   info.ModTime(),
		IsDir:     info.IsDir(),
		IsSymlink: isSymlink,
		IsHidden:  isHidden(name),
	}
}

// isHidden checks if a file is hidden
func isHidden(name string) bool {
	// Unix-like systems: files starting with dot
	return len(name) > 0 && name[0] == '.'
}

// GetExtension returns the file extension without dot
func GetExtension(path string) string {
	ext := filepath.Ext(path)
	if len(ext) > 0 && ext[0] == '.' {
		return ext[1:]
	}
	return ext
}
