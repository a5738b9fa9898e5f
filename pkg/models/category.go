package models

import (
	"fmt"
	"strings"
)

// Category is a file-type filter. Exactly one category is active per scan.
type Category string

const (
	CategoryAll      Category = "all"
	CategoryDocument Category = "document"
	CategoryImage    Category = "image"
	CategoryVideo    Category = "video"
	CategoryAudio    Category = "audio"
	CategoryArchive  Category = "archive"
)

// categoryTable maps each category to its extensions (lowercase, no dot).
// CategoryAll has no entry and matches everything.
var categoryTable = []struct {
	category   Category
	extensions []string
}{
	{CategoryAll, nil},
	{CategoryDocument, []string{"pdf", "doc", "docx", "txt", "rtf", "odt"}},
	{CategoryImage, []string{"jpg", "jpeg", "png", "gif", "webp", "bmp"}},
	{CategoryVideo, []string{"mp4", "avi", "mkv", "mov", "wmv", "flv"}},
	{CategoryAudio, []string{"mp3", "wav", "m4a", "flac", "aac", "ogg"}},
	{CategoryArchive, []string{"zip", "rar", "7z", "tar", "gz"}},
}

// Categories returns all categories in display order
func Categories() []Category {
	out := make([]Category, 0, len(categoryTable))
	for _, entry := range categoryTable {
		out = append(out, entry.category)
	}
	return out
}

// ParseCategory parses a category name, case-insensitively.
// An empty name means CategoryAll.
func ParseCategory(name string) (Category, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return CategoryAll, nil
	}
	c := Category(name)
	if !c.Valid() {
		return "", fmt.Errorf("unknown file type %q (valid: %s)", name, strings.Join(categoryNames(), ", "))
	}
	return c, nil
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	for _, entry := range categoryTable {
		if entry.category == c {
			return true
		}
	}
	return false
}

// Extensions returns a copy of the category's extension set.
// CategoryAll returns nil.
func (c Category) Extensions() []string {
	exts := c.extensions()
	if exts == nil {
		return nil
	}
	out := make([]string, len(exts))
	copy(out, exts)
	return out
}

func (c Category) extensions() []string {
	for _, entry := range categoryTable {
		if entry.category == c {
			return entry.extensions
		}
	}
	return nil
}

// Matches reports whether an extension (with or without leading dot, any
// case) belongs to the category. CategoryAll matches every extension,
// including the empty one.
func (c Category) Matches(extension string) bool {
	if c == CategoryAll {
		return true
	}
	extension = strings.TrimPrefix(extension, ".")
	for _, ext := range c.extensions() {
		if strings.EqualFold(ext, extension) {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

func categoryNames() []string {
	names := make([]string, 0, len(categoryTable))
	for _, c := range Categories() {
		names = append(names, c.String())
	}
	return names
}
