package models

import (
	"sort"
	"strings"
)

// Sink receives each file record as it is discovered
type Sink interface {
	Found(record *FileRecord)
}

// SinkFunc adapts a plain function to the Sink interface
type SinkFunc func(record *FileRecord)

// Found calls f(record)
func (f SinkFunc) Found(record *FileRecord) {
	f(record)
}

// ScanRequest describes one scan invocation
type ScanRequest struct {
	Roots    []string // Directories to traverse
	Filter   Category // Active file-type filter (empty means CategoryAll)
	Progress Sink     // Optional, called once per match in sequential scans
}

// FilterByName returns the records whose name contains query, ignoring case.
// An empty query returns records unchanged.
func FilterByName(records []*FileRecord, query string) []*FileRecord {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return records
	}

	filtered := make([]*FileRecord, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Name), query) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// SortByModTime sorts records newest first. Records with equal timestamps
// keep their relative order.
func SortByModTime(records []*FileRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].ModTime.After(records[j].ModTime)
	})
}
