package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/IvanShishkin/filehound/pkg/models"
)

// generateText generates a text report
func (g *Generator) generateText(results *models.ScanResults, outputFile string) error {
	var sb strings.Builder

	// Header
	sb.WriteString("=" + strings.Repeat("=", 78) + "\n")
	sb.WriteString(fmt.Sprintf("  FILEHOUND SCAN REPORT v%s\n", results.Version))
	sb.WriteString("=" + strings.Repeat("=", 78) + "\n\n")

	// Summary
	sb.WriteString("SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 79) + "\n")
	sb.WriteString(fmt.Sprintf("Scan ID:          %s\n", results.ID))
	sb.WriteString(fmt.Sprintf("Roots:            %s\n", strings.Join(results.Roots, ", ")))
	sb.WriteString(fmt.Sprintf("Scan Mode:        %s\n", results.Mode))
	sb.WriteString(fmt.Sprintf("File Type:        %s\n", results.Filter))
	sb.WriteString(fmt.Sprintf("State:            %s\n", results.State))
	sb.WriteString(fmt.Sprintf("Start Time:       %s\n", results.StartTime.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("End Time:         %s\n", results.EndTime.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("Duration:         %s\n", FormatDuration(results.Duration)))

	if results.Stats != nil {
		sb.WriteString(fmt.Sprintf("Files Found:      %d\n", results.Stats.FilesFound))
		sb.WriteString(fmt.Sprintf("Total Size:       %s\n", models.FormatSize(results.Stats.TotalSize)))
		if results.Stats.LargestFile != "" {
			sb.WriteString(fmt.Sprintf("Largest File:     %s (%s)\n",
				results.Stats.LargestFile, models.FormatSize(results.Stats.LargestSize)))
		}
		sb.WriteString(fmt.Sprintf("Dirs Visited:     %d\n", results.Stats.DirsVisited))
		sb.WriteString(fmt.Sprintf("Dirs Skipped:     %d\n", results.Stats.DirsSkipped))
	}
	sb.WriteString("\n")

	// Files
	if len(results.Files) > 0 {
		sb.WriteString("FILES\n")
		sb.WriteString(strings.Repeat("=", 79) + "\n\n")

		for i, f := range results.Files {
			sb.WriteString(fmt.Sprintf("[%d] %s\n", i+1, f.Name))
			sb.WriteString(fmt.Sprintf("    Path:      %s\n", f.Path))
			sb.WriteString(fmt.Sprintf("    Size:      %s\n", f.FormattedSize()))
			sb.WriteString(fmt.Sprintf("    Type:      %s\n", f.Category()))
			sb.WriteString(fmt.Sprintf("    Modified:  %s\n", f.FormattedDate()))
		}
		sb.WriteString("\n")
	} else {
		sb.WriteString("No files found.\n\n")
	}

	// Unreadable paths
	if results.Stats != nil && len(results.Stats.ErrorPaths) > 0 {
		sb.WriteString("UNREADABLE PATHS\n")
		sb.WriteString(strings.Repeat("-", 79) + "\n")
		for _, p := range results.Stats.ErrorPaths {
			sb.WriteString("  " + p + "\n")
		}
		sb.WriteString("\n")
	}

	// Performance stats
	if results.Stats != nil {
		sb.WriteString("PERFORMANCE\n")
		sb.WriteString(strings.Repeat("-", 79) + "\n")
		sb.WriteString(fmt.Sprintf("Files/Second:     %.2f\n", results.Stats.FilesPerSecond))
		sb.WriteString(fmt.Sprintf("Workers Used:     %d\n", results.Stats.WorkersUsed))
		sb.WriteString("\n")
	}

	// Footer
	sb.WriteString(strings.Repeat("=", 79) + "\n")
	sb.WriteString("End of Report\n")
	sb.WriteString(strings.Repeat("=", 79) + "\n")

	// Write to file
	return os.WriteFile(outputFile, []byte(sb.String()), 0644)
}
