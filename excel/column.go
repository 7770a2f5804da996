package excel

import (
	"fmt"

	"github.com/javajack/xlref"
)

// Column is a handle to one column of a sheet.
type Column struct {
	sheet *Sheet
	index int
}

// Index returns the 0-based column index.
func (c *Column) Index() int { return c.index }

// Name returns the column letters, e.g. "C".
func (c *Column) Name() string { return xlref.ColToName(c.index) }

// Sheet returns the sheet the column belongs to.
func (c *Column) Sheet() *Sheet { return c.sheet }

// Ref returns the whole-column reference, e.g. "Sheet1!C".
func (c *Column) Ref() xlref.CellRef {
	return xlref.NewCellRef(c.sheet.name, xlref.NoIndex, c.index)
}

// Cell returns the cell at the 0-based row.
func (c *Column) Cell(row int) *Cell {
	return c.sheet.Cell(row, c.index)
}

// Values returns the column's formatted values up to its last non-empty cell.
func (c *Column) Values() ([]string, error) {
	cols, err := c.sheet.doc.file.GetCols(c.sheet.name)
	if err != nil {
		return nil, fmt.Errorf("read columns from sheet %q: %w", c.sheet.name, err)
	}
	if c.index >= len(cols) {
		return nil, nil
	}
	return cols[c.index], nil
}

// Cells iterates the defined cells of the column, skipping blanks.
func (c *Column) Cells() (*Iterator[*Cell], error) {
	grid, err := c.sheet.grid()
	if err != nil {
		return nil, err
	}
	rows, _ := c.sheet.extent(grid)
	return newIterator(0, rows, func(row int) (*Cell, bool) {
		cell := c.Cell(row)
		return cell, cell.IsDefined()
	}), nil
}

// Width returns the column width in characters.
func (c *Column) Width() (float64, error) {
	return c.sheet.doc.file.GetColWidth(c.sheet.name, c.Name())
}

// SetWidth sets the column width in characters.
func (c *Column) SetWidth(width float64) error {
	name := c.Name()
	if err := c.sheet.doc.file.SetColWidth(c.sheet.name, name, name, width); err != nil {
		return fmt.Errorf("set width of column %s: %w", name, err)
	}
	return nil
}
