package export

import "fmt"

// Grid is a timetable laid out with periods as rows and days as columns.
type Grid struct {
	Title   string
	Notes   []string
	Corner  string
	Columns []string
	Rows    []GridRow
}

// GridRow is one labelled row of the grid.
type GridRow struct {
	Label string
	Cells []GridCell
}

// GridCell is the rendered content of one slot. Fill is an optional #RRGGBB colour.
type GridCell struct {
	Text string
	Fill string
}

func (g Grid) validate() error {
	if len(g.Columns) == 0 {
		return fmt.Errorf("grid requires at least one column")
	}
	for i, row := range g.Rows {
		if len(row.Cells) != len(g.Columns) {
			return fmt.Errorf("grid row %d has %d cells, expected %d", i, len(row.Cells), len(g.Columns))
		}
	}
	return nil
}

func (g Grid) header() []string {
	corner := g.Corner
	if corner == "" {
		corner = "Period"
	}
	return append([]string{corner}, g.Columns...)
}
