package excel

import (
	"fmt"
	"strings"

	"github.com/javajack/xlref"
)

// Sheet is a handle to a named worksheet.
type Sheet struct {
	doc  *Document
	name string
}

// Name returns the sheet name.
func (s *Sheet) Name() string { return s.name }

// Document returns the workbook the sheet belongs to.
func (s *Sheet) Document() *Document { return s.doc }

// Cell returns a handle for the 0-based position, or nil for negative indices.
func (s *Sheet) Cell(row, col int) *Cell {
	if row < 0 || col < 0 {
		return nil
	}
	return &Cell{sheet: s, row: row, col: col}
}

// CellByRef returns a handle for ref. It returns nil for whole-row or
// whole-column references and for references qualified with another sheet.
// Sheet names compare case-insensitively, as Excel does.
func (s *Sheet) CellByRef(ref xlref.CellRef) *Cell {
	if ref.Sheet != "" && !strings.EqualFold(ref.Sheet, s.name) {
		return nil
	}
	return s.Cell(ref.Row, ref.Col)
}

// Row returns a handle for the 0-based row, or nil for a negative index.
func (s *Sheet) Row(index int) *Row {
	if index < 0 {
		return nil
	}
	return &Row{sheet: s, index: index}
}

// Column returns a handle for the 0-based column, or nil for a negative index.
func (s *Sheet) Column(index int) *Column {
	if index < 0 {
		return nil
	}
	return &Column{sheet: s, index: index}
}

// grid reads the sheet as row-major formatted values, trailing blanks trimmed.
func (s *Sheet) grid() ([][]string, error) {
	rows, err := s.doc.file.GetRows(s.name)
	if err != nil {
		return nil, fmt.Errorf("read rows from sheet %q: %w", s.name, err)
	}
	return rows, nil
}

// maxExtentCells caps how far a declared sheet dimension may widen the scan
// area. Files written by some tools declare A1:XFD1048576.
const maxExtentCells = 1 << 20

// extent returns the number of rows and columns that may hold a value or a
// formula: the grid excelize reports, widened by the declared sheet dimension.
func (s *Sheet) extent(grid [][]string) (rows, cols int) {
	rows = len(grid)
	for _, row := range grid {
		cols = max(cols, len(row))
	}
	dim, err := s.doc.file.GetSheetDimension(s.name)
	if err != nil || dim == "" {
		return rows, cols
	}
	rng, err := xlref.ParseCellRange(dim)
	if err != nil {
		return rows, cols
	}
	last := rng.Last
	if last.Row == xlref.NoIndex || last.Col == xlref.NoIndex || (last.Row+1)*(last.Col+1) > maxExtentCells {
		return rows, cols
	}
	return max(rows, last.Row+1), max(cols, last.Col+1)
}

// defined marks every cell within the extent that holds a raw value or a formula.
func (s *Sheet) defined() ([][]bool, error) {
	grid, err := s.grid()
	if err != nil {
		return nil, err
	}
	rows, cols := s.extent(grid)
	out := make([][]bool, rows)
	for r := range out {
		out[r] = make([]bool, cols)
		for c := range out[r] {
			if r < len(grid) && c < len(grid[r]) && grid[r][c] != "" {
				out[r][c] = true
				continue
			}
			out[r][c] = s.Cell(r, c).IsDefined()
		}
	}
	return out, nil
}

// Rows iterates rows that hold at least one value or formula, skipping empty rows.
// The sheet extent is read once when the iterator is created.
func (s *Sheet) Rows() (*Iterator[*Row], error) {
	marks, err := s.defined()
	if err != nil {
		return nil, err
	}
	return newIterator(0, len(marks), func(i int) (*Row, bool) {
		for _, ok := range marks[i] {
			if ok {
				return s.Row(i), true
			}
		}
		return nil, false
	}), nil
}

// Columns iterates columns that hold at least one value or formula, skipping empty columns.
func (s *Sheet) Columns() (*Iterator[*Column], error) {
	marks, err := s.defined()
	if err != nil {
		return nil, err
	}
	cols := 0
	if len(marks) > 0 {
		cols = len(marks[0])
	}
	return newIterator(0, cols, func(j int) (*Column, bool) {
		for _, row := range marks {
			if row[j] {
				return s.Column(j), true
			}
		}
		return nil, false
	}), nil
}

// Bounds returns the smallest range covering every value and formula on the sheet.
// ok is false for an empty sheet.
func (s *Sheet) Bounds() (rng xlref.CellRange, ok bool, err error) {
	marks, err := s.defined()
	if err != nil {
		return xlref.CellRange{}, false, err
	}
	firstRow, lastRow, firstCol, lastCol := -1, -1, -1, -1
	for r, row := range marks {
		for c, set := range row {
			if !set {
				continue
			}
			if firstRow < 0 {
				firstRow = r
			}
			lastRow = r
			if firstCol < 0 || c < firstCol {
				firstCol = c
			}
			if c > lastCol {
				lastCol = c
			}
		}
	}
	if firstRow < 0 {
		return xlref.CellRange{}, false, nil
	}
	return xlref.NewSheetCellRange(s.name, firstRow, firstCol, lastRow, lastCol), true, nil
}

// local checks that rng can be used on this sheet and qualifies it with the sheet name.
func (s *Sheet) local(rng xlref.CellRange) (xlref.CellRange, error) {
	if rng.Sheet() != "" && !strings.EqualFold(rng.Sheet(), s.name) {
		return xlref.CellRange{}, fmt.Errorf("%w: %s is not on sheet %q", ErrSheetMismatch, rng, s.name)
	}
	return xlref.NewCellRangeFromRefs(rng.First.WithSheet(s.name), rng.Last), nil
}

// clip bounds the open axes of whole-row and whole-column ranges by the sheet contents.
func (s *Sheet) clip(rng xlref.CellRange) (xlref.CellRange, error) {
	if rng.First.Row != xlref.NoIndex && rng.First.Col != xlref.NoIndex {
		return rng, nil
	}
	bounds, ok, err := s.Bounds()
	if err != nil {
		return xlref.CellRange{}, err
	}
	if !ok {
		return xlref.CellRange{}, nil
	}
	tl, br := rng.TopLeft(), rng.BottomRight()
	lastRow, lastCol := min(br.Row, bounds.LastRow()), min(br.Col, bounds.LastCol())
	if lastRow < tl.Row || lastCol < tl.Col {
		return xlref.CellRange{}, nil
	}
	return xlref.NewSheetCellRange(s.name, tl.Row, tl.Col, lastRow, lastCol), nil
}

// Values reads a rectangular range such as "A1:C3" as formatted strings.
// Whole-row and whole-column ranges are clipped to the used area.
func (s *Sheet) Values(rangeStr string) ([][]string, error) {
	rng, err := xlref.ParseCellRange(rangeStr)
	if err != nil {
		return nil, err
	}
	return s.rangeValues(rng)
}

func (s *Sheet) rangeValues(rng xlref.CellRange) ([][]string, error) {
	rng, err := s.local(rng)
	if err != nil {
		return nil, err
	}
	if rng, err = s.clip(rng); err != nil {
		return nil, err
	}
	if rng == (xlref.CellRange{}) {
		return nil, nil
	}
	firstRow, lastRow := min(rng.FirstRow(), rng.LastRow()), max(rng.FirstRow(), rng.LastRow())
	firstCol, lastCol := min(rng.FirstCol(), rng.LastCol()), max(rng.FirstCol(), rng.LastCol())

	out := make([][]string, 0, lastRow-firstRow+1)
	for r := firstRow; r <= lastRow; r++ {
		row := make([]string, 0, lastCol-firstCol+1)
		for c := firstCol; c <= lastCol; c++ {
			v, err := s.Cell(r, c).Value()
			if err != nil {
				return nil, err
			}
			row = append(row, v)
		}
		out = append(out, row)
	}
	return out, nil
}

// SetValues writes rows of values starting at the top-left reference.
func (s *Sheet) SetValues(topLeft string, values [][]any) error {
	ref, err := xlref.ParseCellRef(topLeft)
	if err != nil {
		return err
	}
	start := s.CellByRef(ref)
	if start == nil {
		return fmt.Errorf("%w: %s", ErrUnboundedRange, ref)
	}
	for i, row := range values {
		name := xlref.NewCellRef("", start.row+i, start.col).CellName()
		if err := s.doc.file.SetSheetRow(s.name, name, &row); err != nil {
			return fmt.Errorf("write row %s: %w", name, err)
		}
	}
	return nil
}

// InsertRows inserts n empty rows before the 0-based row.
func (s *Sheet) InsertRows(row, n int) error {
	if err := s.doc.file.InsertRows(s.name, row+1, n); err != nil {
		return fmt.Errorf("insert rows at %d: %w", row+1, err)
	}
	return nil
}

// RemoveRow deletes the 0-based row and shifts the rows below it up.
func (s *Sheet) RemoveRow(row int) error {
	if err := s.doc.file.RemoveRow(s.name, row+1); err != nil {
		return fmt.Errorf("remove row %d: %w", row+1, err)
	}
	return nil
}
