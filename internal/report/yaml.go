package report

import (
	"os"

	"github.com/IvanShishkin/filehound/pkg/models"
	"gopkg.in/yaml.v3"
)

// generateYAML generates a YAML report
func (g *Generator) generateYAML(results *models.ScanResults, outputFile string) error {
	f, err := os.Create(outputFile)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(results); err != nil {
		return err
	}
	return enc.Close()
}
