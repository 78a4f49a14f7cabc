package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bdougie/slidedup/internal/models"
)

// Reporter persists run reports so callers can inspect what was dropped
// after the process exits.
type Reporter interface {
	SaveReport(report models.RunReport) error
}

// fileReporter writes each report as JSON next to the output document.
type fileReporter struct{}

// NewReporter creates a file-backed Reporter.
func NewReporter() Reporter {
	return &fileReporter{}
}

// SaveReport writes report to "<output_file>.report.json".
func (r *fileReporter) SaveReport(report models.RunReport) error {
	reportPath := ReportPath(report.OutputFile)

	dir := filepath.Dir(reportPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory for report: %w", err)
		}
	}

	file, err := os.Create(reportPath)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	return nil
}

// ReportPath returns where the report for the given output document lives.
func ReportPath(outputFile string) string {
	return outputFile + ".report.json"
}
