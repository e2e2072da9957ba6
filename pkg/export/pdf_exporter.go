package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders synthesized note text into a printable PDF.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render converts a note's markdown-style content into a PDF document.
// Supported markers are ## / ### headings and "- " bullets; anything else is
// emitted as body text.
func (e *PDFExporter) Render(title, content string) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("pdf requires non-empty content")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 16)
		pdf.MultiCell(0, 10, title, "", "C", false)
		pdf.Ln(4)
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			pdf.Ln(3)
		case strings.HasPrefix(trimmed, "### "):
			pdf.SetFont("Arial", "B", 11)
			pdf.MultiCell(0, 7, strings.TrimPrefix(trimmed, "### "), "", "", false)
		case strings.HasPrefix(trimmed, "## "):
			pdf.SetFont("Arial", "B", 13)
			pdf.MultiCell(0, 8, strings.TrimPrefix(trimmed, "## "), "", "", false)
		case strings.HasPrefix(trimmed, "- "):
			pdf.SetFont("Arial", "", 10)
			pdf.MultiCell(0, 6, "\x95 "+stripBold(strings.TrimPrefix(trimmed, "- ")), "", "", false)
		default:
			pdf.SetFont("Arial", "", 10)
			pdf.MultiCell(0, 6, stripBold(trimmed), "", "", false)
		}
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func stripBold(s string) string {
	return strings.ReplaceAll(s, "**", "")
}
