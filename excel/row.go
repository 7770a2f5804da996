package excel

import (
	"fmt"

	"github.com/javajack/xlref"
)

// Row is a handle to one row of a sheet.
type Row struct {
	sheet *Sheet
	index int
}

// Index returns the 0-based row index.
func (r *Row) Index() int { return r.index }

// Sheet returns the sheet the row belongs to.
func (r *Row) Sheet() *Sheet { return r.sheet }

// Ref returns the whole-row reference, e.g. "Sheet1!3".
func (r *Row) Ref() xlref.CellRef {
	return xlref.NewCellRef(r.sheet.name, r.index, xlref.NoIndex)
}

// Cell returns the cell at the 0-based column.
func (r *Row) Cell(col int) *Cell {
	return r.sheet.Cell(r.index, col)
}

// Values returns the row's formatted values up to its last non-empty cell.
func (r *Row) Values() ([]string, error) {
	rows, err := r.sheet.grid()
	if err != nil {
		return nil, err
	}
	if r.index >= len(rows) {
		return nil, nil
	}
	return rows[r.index], nil
}

// Cells iterates the defined cells of the row, skipping blanks.
func (r *Row) Cells() (*Iterator[*Cell], error) {
	grid, err := r.sheet.grid()
	if err != nil {
		return nil, err
	}
	_, cols := r.sheet.extent(grid)
	return newIterator(0, cols, func(col int) (*Cell, bool) {
		c := r.Cell(col)
		return c, c.IsDefined()
	}), nil
}

// Height returns the row height in points.
func (r *Row) Height() (float64, error) {
	return r.sheet.doc.file.GetRowHeight(r.sheet.name, r.index+1)
}

// SetHeight sets the row height in points.
func (r *Row) SetHeight(height float64) error {
	if err := r.sheet.doc.file.SetRowHeight(r.sheet.name, r.index+1, height); err != nil {
		return fmt.Errorf("set height of row %d: %w", r.index+1, err)
	}
	return nil
}
