package filesystem

import (
	"fmt"
	"hash/crc32"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-git/go-billy/v5"
)

// mimeByExtension covers the types the file viewers care about most;
// anything else is sniffed from content.
var mimeByExtension = map[string]string{
	"pdf":  "application/pdf",
	"doc":  "application/msword",
	"docx": "application/msword",
	"txt":  "text/plain",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"mp4":  "video/mp4",
	"mp3":  "audio/mpeg",
}

// DetectMIME returns the MIME type of the file at path
func DetectMIME(fsys billy.Filesystem, path string) (string, error) {
	if mt, ok := mimeByExtension[strings.ToLower(GetExtension(path))]; ok {
		return mt, nil
	}

	f, err := fsys.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return "", fmt.Errorf("failed to detect mime type: %w", err)
	}
	return mt.String(), nil
}

// Checksum calculates the CRC32 checksum of the file at path
func Checksum(fsys billy.Filesystem, path string) (string, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	h := crc32.NewIEEE()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return fmt.Sprintf("%08x", h.Sum32()), nil
}

// ParseSize parses size string (e.g., "650K", "1M") to bytes. An empty
// string means no limit and yields 0.
func ParseSize(sizeStr string) (int64, error) {
	raw := sizeStr
	sizeStr = strings.TrimSpace(sizeStr)
	if len(sizeStr) == 0 {
		return 0, nil
	}

	// Get last character (unit)
	last := sizeStr[len(sizeStr)-1]
	var multiplier int64 = 1

	switch last {
	case 'K', 'k':
		multiplier = 1024
		sizeStr = sizeStr[:len(sizeStr)-1]
	case 'M', 'm':
		multiplier = 1024 * 1024
		sizeStr = sizeStr[:len(sizeStr)-1]
	case 'G', 'g':
		multiplier = 1024 * 1024 * 1024
		sizeStr = sizeStr[:len(sizeStr)-1]
	}

	size, err := strconv.ParseInt(sizeStr, 10, 64)
	if err != nil || size < 0 {
		return 0, fmt.Errorf("invalid size %q: want a whole number with optional K, M or G suffix", raw)
	}
	if size > math.MaxInt64/multiplier {
		return 0, fmt.Errorf("invalid size %q: too large", raw)
	}

	return size * multiplier, nil
}
