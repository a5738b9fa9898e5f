package models

import (
	"strings"
	"time"
)

// ScanMode identifies which orchestrator operation produced the results
type ScanMode string

const (
	ModeSequential ScanMode = "sequential"
	ModeParallel   ScanMode = "parallel"
	ModeQuick      ScanMode = "quick"
)

// ScanState is the lifecycle state of a single scan invocation
type ScanState string

const (
	StateIdle      ScanState = "idle"
	StateRunning   ScanState = "running"
	StateCompleted ScanState = "completed"
	StateCancelled ScanState = "cancelled"
	StateFailed    ScanState = "failed"
)

// Terminal reports whether no further transition is possible
func (s ScanState) Terminal() bool {
	return s == StateCompleted || s == StateCancelled || s == StateFailed
}

// ScanResults contains the complete scan results
type ScanResults struct {
	// Summary
	ID        string        `json:"id" yaml:"id"`
	Roots     []string      `json:"roots" yaml:"roots"`
	Filter    Category      `json:"filter" yaml:"filter"`
	Mode      ScanMode      `json:"mode" yaml:"mode"`
	State     ScanState     `json:"state" yaml:"state"`
	StartTime time.Time     `json:"start_time" yaml:"start_time"`
	EndTime   time.Time     `json:"end_time" yaml:"end_time"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
	Version   string        `json:"version" yaml:"version"`

	// Discovered files, ordered by root index for multi-root scans
	Files []*FileRecord `json:"files" yaml:"files"`

	// Statistics
	Stats *ScanStatistics `json:"statistics" yaml:"statistics"`

	// Report path
	ReportPath string `json:"report_path,omitempty" yaml:"report_path,omitempty"`
}

// ScanStatistics contains detailed scan statistics
type ScanStatistics struct {
	FilesFound  int    `json:"files_found" yaml:"files_found"`
	DirsVisited int    `json:"dirs_visited" yaml:"dirs_visited"`
	DirsSkipped int    `json:"dirs_skipped" yaml:"dirs_skipped"`
	EntryErrors int    `json:"entry_errors" yaml:"entry_errors"`
	TotalSize   int64  `json:"total_size" yaml:"total_size"`
	LargestFile string `json:"largest_file,omitempty" yaml:"largest_file,omitempty"`
	LargestSize int64  `json:"largest_file_size" yaml:"largest_file_size"`

	// Paths that could not be read
	ErrorPaths []string `json:"error_paths,omitempty" yaml:"error_paths,omitempty"`

	// Performance
	FilesPerSecond float64 `json:"files_per_second" yaml:"files_per_second"`
	WorkersUsed    int     `json:"workers_used" yaml:"workers_used"`
}

// NewScanResults creates empty results in the Idle state
func NewScanResults(id string, mode ScanMode, roots []string, filter Category) *ScanResults {
	return &ScanResults{
		ID:     id,
		Roots:  roots,
		Filter: filter,
		Mode:   mode,
		State:  StateIdle,
		Files:  []*FileRecord{},
		Stats:  &ScanStatistics{},
	}
}

// AddFiles appends records and updates statistics
func (r *ScanResults) AddFiles(records []*FileRecord) {
	r.Files = append(r.Files, records...)

	if r.Stats == nil {
		r.Stats = &ScanStatistics{}
	}
	for _, f := range records {
		r.Stats.FilesFound++
		r.Stats.TotalSize += f.Size
		if f.Size > r.Stats.LargestSize {
			r.Stats.LargestSize = f.Size
			r.Stats.LargestFile = f.Path
		}
	}
}

// ApplyNameFilter narrows Files to the records whose name contains query,
// ignoring case, and recomputes the file statistics. Directory counters are
// kept. An empty query changes nothing.
func (r *ScanResults) ApplyNameFilter(query string) {
	if strings.TrimSpace(query) == "" {
		return
	}

	matched := FilterByName(r.Files, query)
	r.Files = []*FileRecord{}
	if r.Stats != nil {
		r.Stats.FilesFound = 0
		r.Stats.TotalSize = 0
		r.Stats.LargestFile = ""
		r.Stats.LargestSize = 0
	}
	r.AddFiles(matched)
}
