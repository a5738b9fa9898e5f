package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/IvanShishkin/filehound/internal/config"
	"github.com/IvanShishkin/filehound/pkg/models"
	"go.uber.org/zap/zaptest"
	"gopkg.in/yaml.v3"
)

func sampleResults() *models.ScanResults {
	start := time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)
	results := models.NewScanResults("scan-1", models.ModeSequential, []string{"/sdcard"}, models.CategoryImage)
	results.Version = "0.1.0"
	results.State = models.StateCompleted
	results.StartTime = start
	results.EndTime = start.Add(1500 * time.Millisecond)
	results.Duration = 1500 * time.Millisecond
	results.AddFiles([]*models.FileRecord{
		{Path: "/sdcard/DCIM/a.jpg", Name: "a.jpg", Size: 2048, Extension: "jpg", ModTime: start},
		{Path: "/sdcard/DCIM/b.png", Name: "b.png", Size: 512, Extension: "png", ModTime: start},
	})
	results.Stats.DirsVisited = 2
	results.Stats.ErrorPaths = []string{"/sdcard/private"}
	return results
}

func newTestGenerator(t *testing.T, format, output string) *Generator {
	cfg := &config.Config{ReportFormat: format, OutputFile: output}
	return NewGenerator(cfg, zaptest.NewLogger(t))
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		input    time.Duration
		expected string
	}{
		{250 * time.Millisecond, "250.00ms"},
		{1500 * time.Millisecond, "1.50s"},
		{90 * time.Second, "1m30.00s"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1h2m3.00s"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := FormatDuration(tt.input); got != tt.expected {
				t.Errorf("FormatDuration(%v) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestGenerator_JSON(t *testing.T) {
	output := filepath.Join(t.TempDir(), "report.json")
	g := newTestGenerator(t, "json", output)

	path, err := g.Generate(sampleResults())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if path != output {
		t.Errorf("Generate() path = %q, want %q", path, output)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}

	var decoded models.ScanResults
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Report is not valid JSON: %v", err)
	}
	if len(decoded.Files) != 2 || decoded.Files[0].Path != "/sdcard/DCIM/a.jpg" {
		t.Errorf("decoded files = %+v", decoded.Files)
	}
	if decoded.Filter != models.CategoryImage {
		t.Errorf("decoded filter = %q, want %q", decoded.Filter, models.CategoryImage)
	}
	if decoded.Stats == nil || decoded.Stats.TotalSize != 2560 {
		t.Errorf("decoded stats = %+v, want total size 2560", decoded.Stats)
	}
}

func TestGenerator_YAML(t *testing.T) {
	for _, format := range []string{"yaml", "yml", "YAML"} {
		t.Run(format, func(t *testing.T) {
			output := filepath.Join(t.TempDir(), "report.yaml")
			g := newTestGenerator(t, format, output)

			if _, err := g.Generate(sampleResults()); err != nil {
				t.Fatalf("Generate() error = %v", err)
			}

			data, err := os.ReadFile(output)
			if err != nil {
				t.Fatalf("Failed to read report: %v", err)
			}

			var decoded map[string]interface{}
			if err := yaml.Unmarshal(data, &decoded); err != nil {
				t.Fatalf("Report is not valid YAML: %v", err)
			}
			if decoded["id"] != "scan-1" {
				t.Errorf("id = %v, want scan-1", decoded["id"])
			}
			files, ok := decoded["files"].([]interface{})
			if !ok || len(files) != 2 {
				t.Errorf("files = %v, want 2 entries", decoded["files"])
			}
		})
	}
}

func TestGenerator_Text(t *testing.T) {
	output := filepath.Join(t.TempDir(), "report.txt")
	g := newTestGenerator(t, "text", output)

	if _, err := g.Generate(sampleResults()); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}
	content := string(data)

	for _, want := range []string{
		"FILEHOUND SCAN REPORT v0.1.0",
		"Scan ID:          scan-1",
		"File Type:        image",
		"Files Found:      2",
		"Total Size:       2 KB",
		"Largest File:     /sdcard/DCIM/a.jpg (2 KB)",
		"[2] b.png",
		"UNREADABLE PATHS",
		"/sdcard/private",
		"End of Report",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("text report missing %q", want)
		}
	}
}

func TestGenerator_Markdown(t *testing.T) {
	output := filepath.Join(t.TempDir(), "report.md")
	g := newTestGenerator(t, "markdown", output)

	if _, err := g.Generate(sampleResults()); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}
	content := string(data)

	for _, want := range []string{
		"# Filehound Scan Report v0.1.0",
		"| Root | `/sdcard` |",
		"| **Files Found** | **2** |",
		"| 1 | a.jpg | 2 KB |",
		"`/sdcard/DCIM/b.png`",
		"## Unreadable Paths",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("markdown report missing %q", want)
		}
	}
}

func TestEscapeMarkdown(t *testing.T) {
	if got := escapeMarkdown("a|b\nc"); got != "a\\|b c" {
		t.Errorf("escapeMarkdown() = %q", got)
	}
}

func TestGenerator_UnknownFormat(t *testing.T) {
	output := filepath.Join(t.TempDir(), "report.xml")
	g := newTestGenerator(t, "xml", output)

	if _, err := g.Generate(sampleResults()); err == nil {
		t.Fatal("Generate() expected error for unknown format, got nil")
	}
	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Errorf("report file should not exist for unknown format")
	}
}

func TestGenerator_Console(t *testing.T) {
	g := newTestGenerator(t, "", "")
	var buf bytes.Buffer
	g.out = &buf

	path, err := g.Generate(sampleResults())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if path != "" {
		t.Errorf("console output should not return a path, got %q", path)
	}

	out := buf.String()
	for _, want := range []string{"SCAN COMPLETE", "/sdcard/DCIM/a.jpg", "b.png", "2 KB", "1.50s"} {
		if !strings.Contains(out, want) {
			t.Errorf("console output missing %q", want)
		}
	}
}

func TestGenerator_ConsoleEmpty(t *testing.T) {
	g := newTestGenerator(t, "", "")
	var buf bytes.Buffer
	g.out = &buf

	results := models.NewScanResults("scan-2", models.ModeQuick, []string{"/empty"}, models.CategoryAll)
	if _, err := g.Generate(results); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !strings.Contains(buf.String(), "No files found") {
		t.Errorf("console output = %q, want no files message", buf.String())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		n        int
		expected string
	}{
		{"short.txt", 40, "short.txt"},
		{"a-very-long-file-name.mp4", 10, "a-very-..."},
		{"фото_отпуск.jpg", 8, "фото_..."},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := truncate(tt.input, tt.n); got != tt.expected {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.expected)
			}
		})
	}
}
