package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/IvanShishkin/filehound/pkg/models"
)

// generateMarkdown generates a Markdown report
func (g *Generator) generateMarkdown(results *models.ScanResults, outputFile string) error {
	var sb strings.Builder

	// Header
	sb.WriteString(fmt.Sprintf("# Filehound Scan Report v%s\n\n", results.Version))

	// Summary
	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Parameter | Value |\n")
	sb.WriteString("|-----------|-------|\n")
	for _, root := range results.Roots {
		sb.WriteString(fmt.Sprintf("| Root | `%s` |\n", root))
	}
	sb.WriteString(fmt.Sprintf("| Scan Mode | %s |\n", results.Mode))
	sb.WriteString(fmt.Sprintf("| File Type | %s |\n", results.Filter))
	sb.WriteString(fmt.Sprintf("| Start Time | %s |\n", results.StartTime.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("| Duration | %s |\n", FormatDuration(results.Duration)))
	if results.Stats != nil {
		sb.WriteString(fmt.Sprintf("| **Files Found** | **%d** |\n", results.Stats.FilesFound))
		sb.WriteString(fmt.Sprintf("| Total Size | %s |\n", models.FormatSize(results.Stats.TotalSize)))
		sb.WriteString(fmt.Sprintf("| Skipped Directories | %d |\n", results.Stats.DirsSkipped))
	}
	sb.WriteString("\n")

	if len(results.Files) == 0 {
		sb.WriteString("> **No files found**\n\n")
		return os.WriteFile(outputFile, []byte(sb.String()), 0644)
	}

	// Files
	sb.WriteString("## Files\n\n")
	sb.WriteString("| # | Name | Size | Modified | Path |\n")
	sb.WriteString("|---|------|------|----------|------|\n")
	for i, f := range results.Files {
		sb.WriteString(fmt.Sprintf("| %d | %s | %s | %s | `%s` |\n",
			i+1, escapeMarkdown(f.Name), f.FormattedSize(), f.FormattedDate(), f.Path))
	}
	sb.WriteString("\n")

	if results.Stats != nil && len(results.Stats.ErrorPaths) > 0 {
		sb.WriteString("## Unreadable Paths\n\n")
		for _, p := range results.Stats.ErrorPaths {
			sb.WriteString(fmt.Sprintf("- `%s`\n", p))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("---\n")
	sb.WriteString(fmt.Sprintf("*Generated by Filehound v%s*\n", results.Version))

	return os.WriteFile(outputFile, []byte(sb.String()), 0644)
}

// escapeMarkdown escapes characters that break table cells
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
