package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageWidth   = 277.0
	labelWidth  = 42.0
	rowHeight   = 10.0
	headerFont  = 10.0
	bodyFont    = 8.0
	ellipsis    = "..."
	defaultFill = "#FFFFFF"
)

// PDFExporter renders a Grid as a landscape A4 timetable.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render draws the grid with each slot shaded by its fill colour. Core fonts
// only cover Latin-1, other runes are replaced.
func (e *PDFExporter) Render(grid Grid) ([]byte, error) {
	if err := grid.validate(); err != nil {
		return nil, err
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if grid.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, tr(grid.Title), "", 1, "C", false, 0, "")
	}
	if len(grid.Notes) > 0 {
		pdf.SetFont("Arial", "", 9)
		for _, note := range grid.Notes {
			pdf.CellFormat(0, 5, tr(note), "", 1, "C", false, 0, "")
		}
		pdf.Ln(3)
	}

	colWidth := (pageWidth - labelWidth) / float64(len(grid.Columns))
	header := grid.header()

	pdf.SetFont("Arial", "B", headerFont)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(labelWidth, rowHeight, tr(header[0]), "1", 0, "C", true, 0, "")
	for _, col := range header[1:] {
		pdf.CellFormat(colWidth, rowHeight, tr(col), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	for _, row := range grid.Rows {
		pdf.SetFont("Arial", "B", bodyFont)
		pdf.SetFillColor(245, 245, 245)
		pdf.CellFormat(labelWidth, rowHeight, fit(pdf, tr(row.Label), labelWidth), "1", 0, "L", true, 0, "")

		pdf.SetFont("Arial", "", bodyFont)
		for _, cell := range row.Cells {
			r, g, b := parseHex(cell.Fill)
			pdf.SetFillColor(r, g, b)
			pdf.CellFormat(colWidth, rowHeight, fit(pdf, tr(cell.Text), colWidth), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// fit trims text so it stays inside a cell of the given width. text is
// already cp1252, one byte per glyph, so it is cut by bytes.
func fit(pdf *gofpdf.Fpdf, text string, width float64) string {
	limit := width - 2
	if pdf.GetStringWidth(text) <= limit {
		return text
	}
	n := len(text)
	for n > 0 && pdf.GetStringWidth(text[:n]+ellipsis) > limit {
		n--
	}
	return text[:n] + ellipsis
}

// parseHex reads #RRGGBB and lightens it so black text stays legible.
func parseHex(hex string) (int, int, int) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		hex = strings.TrimPrefix(defaultFill, "#")
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 255, 255, 255
	}
	lighten := func(c uint64) int { return int(c + (255-c)*3/5) }
	return lighten(v >> 16 & 0xFF), lighten(v >> 8 & 0xFF), lighten(v & 0xFF)
}
