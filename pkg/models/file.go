package models

import (
	"fmt"
	"time"
)

// FileRecord is a snapshot of one filesystem entry taken at scan time.
// Path is absolute and cleaned and identifies the record within a result set.
// Size is 0 for directories; Extension is lowercased and has no dot.
// Records are never modified after construction.
type FileRecord struct {
	Path      string    `json:"path" yaml:"path"`
	Name      string    `json:"name" yaml:"name"`
	Size      int64     `json:"size" yaml:"size"`
	Extension string    `json:"extension" yaml:"extension"`
	ModTime   time.Time `json:"mod_time" yaml:"mod_time"`
	IsDir     bool      `json:"is_dir" yaml:"is_dir"`
	IsSymlink bool      `json:"is_symlink,omitempty" yaml:"is_symlink,omitempty"`
	IsHidden  bool      `json:"is_hidden,omitempty" yaml:"is_hidden,omitempty"`
}

// LastModifiedMillis returns the modification time in Unix epoch milliseconds
func (r *FileRecord) LastModifiedMillis() int64 {
	return r.ModTime.UnixMilli()
}

// SameFile reports whether both records describe the same logical file.
// Only the path is compared.
func (r *FileRecord) SameFile(other *FileRecord) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.Path == other.Path
}

// Category returns the first category whose extension table contains the
// record's extension, or CategoryAll when none does.
func (r *FileRecord) Category() Category {
	if r.IsDir {
		return CategoryAll
	}
	for _, c := range Categories() {
		if c != CategoryAll && c.Matches(r.Extension) {
			return c
		}
	}
	return CategoryAll
}

// FormattedSize returns a human-readable size
func (r *FileRecord) FormattedSize() string {
	if r.IsDir {
		return "Folder"
	}
	return FormatSize(r.Size)
}

// FormattedDate returns the modification time as dd/MM/yyyy HH:mm in local time
func (r *FileRecord) FormattedDate() string {
	return r.ModTime.Local().Format("02/01/2006 15:04")
}

// FormatSize formats a byte count using whole units
func FormatSize(size int64) string {
	const unit = 1024
	switch {
	case size < unit:
		return fmt.Sprintf("%d B", size)
	case size < unit*unit:
		return fmt.Sprintf("%d KB", size/unit)
	case size < unit*unit*unit:
		return fmt.Sprintf("%d MB", size/(unit*unit))
	default:
		return fmt.Sprintf("%d GB", size/(unit*unit*unit))
	}
}
