package report

import (
	"bytes"
	"fmt"
	"html/template"
	"os"

	"github.com/Orange-Health/deploy-report/internal/models"
)

// Data is everything a single render needs; rendering the same Data twice
// yields byte-identical markup.
type Data struct {
	Namespace   string
	Services    []models.ServiceRecord
	Stats       models.Stats
	WebURL      string
	Org         string
	AutoRefresh bool
}

var tmpl = template.Must(template.New("report").Parse(reportTemplate))

// Render produces the self-contained HTML document.
func Render(data Data) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return buf.String(), nil
}

// Write renders and overwrites the report file.
func Write(path string, data Data) error {
	html, err := Render(data)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
