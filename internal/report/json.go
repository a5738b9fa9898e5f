package report

import (
	"encoding/json"
	"os"

	"github.com/IvanShishkin/filehound/pkg/models"
)

// generateJSON generates a JSON report
func (g *Generator) generateJSON(results *models.ScanResults, outputFile string) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}

	// Write to file
	return os.WriteFile(outputFile, data, 0644)
}
