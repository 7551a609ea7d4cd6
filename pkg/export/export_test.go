package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleGrid() Grid {
	return Grid{
		Title:   "Option A (most balanced)",
		Notes:   []string{"Score 80 (good)"},
		Columns: []string{"Monday", "Tuesday"},
		Rows: []GridRow{
			{Label: "Period 1 (08:30-09:20)", Cells: []GridCell{{Text: "MA101 Mathematics", Fill: "#3B82F6"}, {}}},
			{Label: "Period 2 (09:20-10:10)", Cells: []GridCell{{Text: "AR101, Art"}, {Text: "EN101 English", Fill: "bogus"}}},
		},
	}
}

func TestCSVExporterRendersGrid(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleGrid())
	require.NoError(t, err)

	expected := "Period,Monday,Tuesday\n" +
		"Period 1 (08:30-09:20),MA101 Mathematics,\n" +
		"Period 2 (09:20-10:10),\"AR101, Art\",EN101 English\n"
	assert.Equal(t, expected, string(out))
}

func TestCSVExporterRejectsRaggedRows(t *testing.T) {
	grid := sampleGrid()
	grid.Rows[0].Cells = grid.Rows[0].Cells[:1]

	_, err := NewCSVExporter().Render(grid)
	assert.Error(t, err)
}

func TestPDFExporterProducesDocument(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleGrid())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	_, err = NewPDFExporter().Render(Grid{})
	assert.Error(t, err)
}

func TestFitKeepsTranslatedAccents(t *testing.T) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "", bodyFont)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	long := tr("Éducation physique et sportive avancée niveau supérieur")
	out := fit(pdf, long, 20)

	require.True(t, strings.HasSuffix(out, ellipsis))
	kept := strings.TrimSuffix(out, ellipsis)
	assert.NotEmpty(t, kept)
	assert.Equal(t, byte(0xC9), kept[0])
	assert.True(t, strings.HasPrefix(long, kept))
	assert.NotContains(t, out, "\uFFFD")
	assert.LessOrEqual(t, pdf.GetStringWidth(out), 18.0)

	short := tr("Éco")
	assert.Equal(t, short, fit(pdf, short, 20))
}

func TestParseHexLightensColour(t *testing.T) {
	r, g, b := parseHex("#000000")
	assert.Equal(t, []int{153, 153, 153}, []int{r, g, b})

	r, g, b = parseHex("nope")
	assert.Equal(t, []int{255, 255, 255}, []int{r, g, b})
}
