package plotpage

import (
	"fmt"
	"io"
)

// Table renders an HTML table.
type Table struct {
	Headers []string
	Rows    [][]string
	Striped bool
}

// NewTable creates a new table.
func NewTable(headers []string) *Table {
	return &Table{Headers: headers, Striped: true}
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cells ...string) *Table {
	t.Rows = append(t.Rows, cells)

	return t
}

// Render writes the table HTML.
func (t *Table) Render(w io.Writer) error {
	html, err := renderTemplate("table.html", tableData{
		Headers: t.Headers,
		Rows:    t.Rows,
		Striped: t.Striped,
	})
	if err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}

	_, err = w.Write([]byte(html))
	if err != nil {
		return fmt.Errorf("writing table: %w", err)
	}

	return nil
}

// Stat is one labeled figure in a stat strip.
type Stat struct {
	Label string
	Value string
}

// StatStrip renders a horizontal row of stats.
type StatStrip struct {
	Stats []Stat
}

// NewStatStrip creates a stat strip.
func NewStatStrip(stats ...Stat) *StatStrip {
	return &StatStrip{Stats: stats}
}

// Render writes the stat strip HTML.
func (s *StatStrip) Render(w io.Writer) error {
	html, err := renderTemplate("stats.html", statsData{Stats: s.Stats})
	if err != nil {
		return fmt.Errorf("rendering stats: %w", err)
	}

	_, err = w.Write([]byte(html))
	if err != nil {
		return fmt.Errorf("writing stats: %w", err)
	}

	return nil
}
