package xlref

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// CellRange is a rectangular region between two corners, optionally on a
// named sheet. Constructors order the corners so that First is top-left and
// Last is bottom-right; every geometry method relies on that.
type CellRange struct {
	First CellRef
	Last  CellRef
}

// NewCellRange creates a range from 0-based bounds on the current sheet.
func NewCellRange(firstRow, firstCol, lastRow, lastCol int) CellRange {
	return NewSheetCellRange("", firstRow, firstCol, lastRow, lastCol)
}

// NewSheetCellRange creates a range from 0-based bounds on a named sheet.
func NewSheetCellRange(sheet string, firstRow, firstCol, lastRow, lastCol int) CellRange {
	return NewCellRangeFromRefs(NewCellRef(sheet, firstRow, firstCol), NewCellRef(sheet, lastRow, lastCol))
}

// NewCellRangeFromRefs creates a range from two corners. The last corner
// takes the sheet of the first; swapped bounds are put in order.
func NewCellRangeFromRefs(first, last CellRef) CellRange {
	last.Sheet = first.Sheet
	if first.Row > last.Row && last.Row != NoIndex {
		first.Row, last.Row = last.Row, first.Row
		first.RowAbs, last.RowAbs = last.RowAbs, first.RowAbs
	}
	if first.Col > last.Col && last.Col != NoIndex {
		first.Col, last.Col = last.Col, first.Col
		first.ColAbs, last.ColAbs = last.ColAbs, first.ColAbs
	}
	return CellRange{First: first, Last: last}
}

// ParseCellRange parses a range like "A3:G20", "Sheet1!A1:B2", "'My Sheet'!$A$1:$C$3",
// "A:C", "2:5" or a single cell "B7".
func ParseCellRange(s string) (CellRange, error) {
	s = strings.TrimSpace(s)
	idx := unquotedIndex(s, ':')
	if idx < 0 {
		ref, err := ParseCellRef(s)
		if err != nil {
			return CellRange{}, err
		}
		return CellRange{First: ref, Last: ref}, nil
	}

	firstPart, lastPart := s[:idx], s[idx+1:]
	if strings.ContainsAny(lastPart, ":!") {
		return CellRange{}, invalidRef(s, "unexpected ':' or '!' after range separator")
	}
	first, err := ParseCellRef(firstPart)
	if err != nil {
		return CellRange{}, err
	}
	last, err := ParseCellRef(lastPart)
	if err != nil {
		return CellRange{}, err
	}
	if first.IsWholeRow() != last.IsWholeRow() || first.IsWholeColumn() != last.IsWholeColumn() {
		return CellRange{}, invalidRef(s, "mixed row, column and cell corners")
	}
	return NewCellRangeFromRefs(first, last), nil
}

// unquotedIndex returns the index of the first sep outside a quoted sheet name.
func unquotedIndex(s string, sep byte) int {
	quoted := false
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\'':
			quoted = !quoted
		case s[i] == sep && !quoted:
			return i
		}
	}
	return -1
}

// Sheet returns the sheet name of this range (from First cell).
func (r CellRange) Sheet() string { return r.First.Sheet }

func (r CellRange) FirstRow() int { return r.First.Row }
func (r CellRange) LastRow() int  { return r.Last.Row }
func (r CellRange) FirstCol() int { return r.First.Col }
func (r CellRange) LastCol() int  { return r.Last.Col }

// TopLeft returns the top-left corner as a plain relative reference.
func (r CellRange) TopLeft() CellRef {
	return NewCellRef(r.First.Sheet, max(r.First.Row, 0), max(r.First.Col, 0))
}

// BottomRight returns the bottom-right corner as a plain relative reference.
// Open axes of whole-row or whole-column ranges end at the sheet limit.
func (r CellRange) BottomRight() CellRef {
	row, col := r.Last.Row, r.Last.Col
	if row == NoIndex {
		row = excelize.TotalRows - 1
	}
	if col == NoIndex {
		col = excelize.MaxColumns - 1
	}
	return NewCellRef(r.First.Sheet, row, col)
}

// IsSingleCell reports whether both corners address the same cell.
func (r CellRange) IsSingleCell() bool {
	return r.First.Row == r.Last.Row && r.First.Col == r.Last.Col &&
		r.First.Row != NoIndex && r.First.Col != NoIndex
}

// RowsCount returns lastRow - firstRow + 1, or the sheet row limit for a
// whole-column range.
func (r CellRange) RowsCount() int {
	if r.First.Row == NoIndex {
		return excelize.TotalRows
	}
	return r.Last.Row - r.First.Row + 1
}

// ColumnsCount returns lastCol - firstCol + 1, or the sheet column limit for
// a whole-row range.
func (r CellRange) ColumnsCount() int {
	if r.First.Col == NoIndex {
		return excelize.MaxColumns
	}
	return r.Last.Col - r.First.Col + 1
}

// IsInRange reports whether the 0-based (row, col) lies within the range.
// An unset axis spans the whole sheet.
func (r CellRange) IsInRange(row, col int) bool {
	return inAxis(r.First.Row, r.Last.Row, row) && inAxis(r.First.Col, r.Last.Col, col)
}

func inAxis(first, last, v int) bool {
	if first == NoIndex {
		return true
	}
	return first <= v && v <= last
}

// ContainsRange reports whether both corners of other lie within r.
func (r CellRange) ContainsRange(other CellRange) bool {
	tl, br := other.TopLeft(), other.BottomRight()
	return r.IsInRange(tl.Row, tl.Col) && r.IsInRange(br.Row, br.Col)
}

// Intersects reports whether the two ranges share at least one cell.
func (r CellRange) Intersects(other CellRange) bool {
	a1, a2 := r.TopLeft(), r.BottomRight()
	b1, b2 := other.TopLeft(), other.BottomRight()
	return a1.Row <= b2.Row && b1.Row <= a2.Row &&
		a1.Col <= b2.Col && b1.Col <= a2.Col
}

// Cells returns every cell reference in the range in row-major order.
// Whole-row and whole-column ranges are clipped to limit cells per open axis.
func (r CellRange) Cells(limitRows, limitCols int) []CellRef {
	tl, br := r.TopLeft(), r.BottomRight()
	if r.First.Row == NoIndex {
		br.Row = min(br.Row, tl.Row+limitRows-1)
	}
	if r.First.Col == NoIndex {
		br.Col = min(br.Col, tl.Col+limitCols-1)
	}
	if br.Row < tl.Row || br.Col < tl.Col {
		return nil
	}
	refs := make([]CellRef, 0, (br.Row-tl.Row+1)*(br.Col-tl.Col+1))
	for row := tl.Row; row <= br.Row; row++ {
		for col := tl.Col; col <= br.Col; col++ {
			refs = append(refs, NewCellRef(r.First.Sheet, row, col))
		}
	}
	return refs
}

// Equal reports whether both corners match.
func (r CellRange) Equal(other CellRange) bool { return r == other }

// String formats the range in A1 style.
func (r CellRange) String() string { return r.FormatAsString() }

// FormatAsString formats the range as "Sheet1!A1:C5", or a single reference
// when both corners are the same cell.
func (r CellRange) FormatAsString() string {
	if r.collapses() {
		return r.First.FormatAsString()
	}
	return r.First.FormatAsString() + ":" + r.Last.CellName()
}

// FormatAsRowColString formats the range in R1C1 style.
func (r CellRange) FormatAsRowColString() string {
	if r.collapses() {
		return r.First.FormatAsRowColString()
	}
	return r.First.FormatAsRowColString() + ":" + r.Last.WithSheet("").FormatAsRowColString()
}

// collapses reports whether the range formats as a lone reference. "A:A" and
// "3:3" keep both halves so they do not read back as a single cell part.
func (r CellRange) collapses() bool {
	return r.First == r.Last && r.First.Row != NoIndex && r.First.Col != NoIndex
}

// Size returns the dimensions of the range.
func (r CellRange) Size() Size {
	return Size{Width: r.ColumnsCount(), Height: r.RowsCount()}
}

// Size represents width (columns) and height (rows).
type Size struct {
	Width  int
	Height int
}

// String formats the Size as "(WxH)".
func (s Size) String() string {
	return fmt.Sprintf("(%dx%d)", s.Width, s.Height)
}
