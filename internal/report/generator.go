package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/IvanShishkin/filehound/internal/config"
	"github.com/IvanShishkin/filehound/pkg/models"
	"go.uber.org/zap"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
	colorOrange = "\033[38;5;208m"
	colorGray   = "\033[38;5;245m"
)

// Formats lists the accepted report formats
var Formats = []string{"text", "txt", "json", "yaml", "yml", "md", "markdown"}

// FormatDuration formats duration to a human-readable string with max 2 decimal places
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		// Milliseconds
		return fmt.Sprintf("%.2fms", float64(d.Nanoseconds())/1e6)
	} else if d < time.Minute {
		// Seconds
		return fmt.Sprintf("%.2fs", d.Seconds())
	} else if d < time.Hour {
		// Minutes and seconds
		mins := int(d.Minutes())
		secs := d.Seconds() - float64(mins*60)
		return fmt.Sprintf("%dm%.2fs", mins, secs)
	}
	// Hours, minutes and seconds
	hours := int(d.Hours())
	mins := int(d.Minutes()) - hours*60
	secs := d.Seconds() - float64(hours*3600) - float64(mins*60)
	return fmt.Sprintf("%dh%dm%.2fs", hours, mins, secs)
}

// Generator generates scan reports in various formats
type Generator struct {
	config *config.Config
	logger *zap.Logger
	out    io.Writer
}

// NewGenerator creates a new report generator
func NewGenerator(cfg *config.Config, logger *zap.Logger) *Generator {
	return &Generator{
		config: cfg,
		logger: logger,
		out:    os.Stdout,
	}
}

// Generate writes results in the configured format and returns the absolute
// path of the report. With no format set the results are printed to the
// console and the returned path is empty.
func (g *Generator) Generate(results *models.ScanResults) (string, error) {
	format := strings.ToLower(g.config.ReportFormat)
	outputFile := g.config.OutputFile

	// If no format specified, print to console
	if format == "" {
		g.printConsole(results)
		return "", nil
	}

	ext, err := extensionFor(format)
	if err != nil {
		return "", err
	}

	// Generate default filename if not specified
	if outputFile == "" {
		timestamp := time.Now().Format("20060102-150405")
		outputFile = fmt.Sprintf("FILEHOUND-REPORT-%s.%s", timestamp, ext)
	}

	g.logger.Info("Generating report",
		zap.String("format", format),
		zap.String("output", outputFile))

	switch ext {
	case "json":
		err = g.generateJSON(results, outputFile)
	case "txt":
		err = g.generateText(results, outputFile)
	case "yaml":
		err = g.generateYAML(results, outputFile)
	case "md":
		err = g.generateMarkdown(results, outputFile)
	}

	if err != nil {
		return "", fmt.Errorf("failed to generate %s report: %w", format, err)
	}

	// Get absolute path
	absPath, _ := filepath.Abs(outputFile)
	return absPath, nil
}

// extensionFor maps a report format to its file extension
func extensionFor(format string) (string, error) {
	switch format {
	case "json":
		return "json", nil
	case "txt", "text":
		return "txt", nil
	case "yaml", "yml":
		return "yaml", nil
	case "md", "markdown":
		return "md", nil
	default:
		return "", fmt.Errorf("unknown report format: %s (valid: %s)", format, strings.Join(Formats, ", "))
	}
}

// printConsole prints results to stdout with colors
func (g *Generator) printConsole(results *models.ScanResults) {
	w := g.out
	fmt.Fprintln(w)

	// Summary header
	fmt.Fprintf(w, "%s%sSCAN COMPLETE%s\n", colorBold, colorOrange, colorReset)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %sRoots:%s     %s\n", colorGray, colorReset, strings.Join(results.Roots, ", "))
	fmt.Fprintf(w, "  %sMode:%s      %s\n", colorGray, colorReset, results.Mode)
	fmt.Fprintf(w, "  %sType:%s      %s\n", colorGray, colorReset, results.Filter)
	if results.Stats != nil {
		fmt.Fprintf(w, "  %sFound:%s     %d (%s)\n", colorGray, colorReset,
			results.Stats.FilesFound, models.FormatSize(results.Stats.TotalSize))
		if results.Stats.DirsSkipped > 0 {
			fmt.Fprintf(w, "  %sSkipped:%s   %s%d directories%s\n", colorGray, colorReset,
				colorYellow, results.Stats.DirsSkipped, colorReset)
		}
	}
	fmt.Fprintf(w, "  %sDuration:%s  %s\n", colorGray, colorReset, FormatDuration(results.Duration))
	fmt.Fprintln(w)

	if len(results.Files) == 0 {
		fmt.Fprintf(w, "  %sNo files found%s\n", colorDim, colorReset)
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintf(w, "%s───────────────────────────────────────────────────────────────%s\n", colorGray, colorReset)
	for _, f := range results.Files {
		nameColor := colorReset
		if f.IsDir {
			nameColor = colorBlue + colorBold
		}
		fmt.Fprintf(w, "  %s%-40s%s %s%10s%s  %s%s%s\n",
			nameColor, truncate(f.Name, 40), colorReset,
			colorGreen, f.FormattedSize(), colorReset,
			colorGray, f.FormattedDate(), colorReset)
		fmt.Fprintf(w, "  %s%s%s\n", colorCyan+colorDim, f.Path, colorReset)
	}
	fmt.Fprintf(w, "%s───────────────────────────────────────────────────────────────%s\n", colorGray, colorReset)
	fmt.Fprintln(w)
}

// truncate shortens s to at most n runes for console columns
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
