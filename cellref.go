// Package xlref models spreadsheet cell references and rectangular ranges:
// A1 and R1C1 parsing and formatting, bijective base-26 column names and
// sheet-name quoting. All values are immutable and safe to share.
//
// Rows and columns are 0-based throughout; the spreadsheet's 1-based row
// numbers appear only in formatted strings.
package xlref

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// NoIndex marks an unset row or column. A CellRef with Row == NoIndex refers
// to a whole column, one with Col == NoIndex to a whole row.
const NoIndex = -1

// ErrInvalidReference is returned (wrapped) for any malformed reference string.
var ErrInvalidReference = errors.New("invalid cell reference")

// brokenRef is the marker a spreadsheet leaves behind when a referenced
// sheet or cell no longer exists.
const brokenRef = "#REF!"

// CellRef identifies one cell, a whole row or a whole column, optionally on a
// named sheet. CellRef is a value type; the With* methods return modified copies.
type CellRef struct {
	Sheet  string // sheet name (empty = current sheet)
	Row    int    // 0-based row index, NoIndex for a whole column
	Col    int    // 0-based column index, NoIndex for a whole row
	RowAbs bool   // row carries a '$' marker
	ColAbs bool   // column carries a '$' marker
}

// NewCellRef creates a relative CellRef with explicit sheet, row, col.
func NewCellRef(sheet string, row, col int) CellRef {
	return CellRef{Sheet: sheet, Row: row, Col: col}
}

// NewAbsCellRef creates a CellRef with explicit absolute markers.
func NewAbsCellRef(sheet string, row, col int, rowAbs, colAbs bool) CellRef {
	return CellRef{Sheet: sheet, Row: row, Col: col, RowAbs: rowAbs, ColAbs: colAbs}
}

func invalidRef(s, reason string) error {
	return fmt.Errorf("%w %q: %s", ErrInvalidReference, s, reason)
}

// ParseCellRef parses an A1-style reference like "C23", "$C$23", "Sheet1!C23",
// "'My Sheet'!C23", "C" (whole column) or "23" (whole row).
func ParseCellRef(s string) (CellRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CellRef{}, invalidRef(s, "empty reference")
	}
	if strings.HasSuffix(s, brokenRef) {
		return CellRef{}, invalidRef(s, "broken link")
	}

	sheet, cellPart, err := splitSheet(s)
	if err != nil {
		return CellRef{}, err
	}

	ref, err := parseCellPart(cellPart)
	if err != nil {
		return CellRef{}, invalidRef(s, err.Error())
	}
	ref.Sheet = sheet
	return ref, nil
}

// splitSheet separates an optional sheet prefix from the cell part.
func splitSheet(s string) (sheet, cellPart string, err error) {
	if s[0] == '\'' {
		var b strings.Builder
		i := 1
		for {
			if i >= len(s) {
				return "", "", invalidRef(s, "mismatched quotes in sheet name")
			}
			if s[i] == '\'' {
				if i+1 < len(s) && s[i+1] == '\'' {
					b.WriteByte('\'')
					i += 2
					continue
				}
				break
			}
			b.WriteByte(s[i])
			i++
		}
		rest := s[i+1:]
		if !strings.HasPrefix(rest, "!") {
			return "", "", invalidRef(s, "quoted sheet name must be followed by '!'")
		}
		return b.String(), rest[1:], nil
	}

	idx := strings.LastIndex(s, "!")
	if idx < 0 {
		return "", s, nil
	}
	sheet = s[:idx]
	switch {
	case sheet == "":
		return "", "", invalidRef(s, "empty sheet name")
	case strings.ContainsRune(sheet, '\''):
		return "", "", invalidRef(s, "mismatched quotes in sheet name")
	case strings.ContainsRune(sheet, ' '):
		return "", "", invalidRef(s, "sheet name with spaces must be quoted")
	}
	return sheet, s[idx+1:], nil
}

// parseCellPart parses "[$]letters[$]digits"; either letters or digits may be
// missing but not both.
func parseCellPart(part string) (CellRef, error) {
	ref := CellRef{Row: NoIndex, Col: NoIndex}
	i := 0

	lead := i < len(part) && part[i] == '$'
	if lead {
		i++
	}
	start := i
	for i < len(part) && isAlpha(part[i]) {
		i++
	}
	letters := part[start:i]

	mid := i < len(part) && part[i] == '$'
	if mid {
		i++
	}
	start = i
	for i < len(part) && part[i] >= '0' && part[i] <= '9' {
		i++
	}
	digits := part[start:i]

	if i != len(part) {
		return CellRef{}, fmt.Errorf("unexpected character %q", part[i])
	}
	if letters == "" && digits == "" {
		return CellRef{}, errors.New("missing column and row")
	}
	if letters == "" && lead && mid {
		return CellRef{}, errors.New("duplicate '$' marker")
	}
	if digits == "" && mid {
		return CellRef{}, errors.New("'$' marker without row")
	}

	if letters != "" {
		col, err := NameToCol(letters)
		if err != nil {
			return CellRef{}, err
		}
		ref.Col = col
		ref.ColAbs = lead
		ref.RowAbs = mid
	} else {
		ref.RowAbs = lead || mid
	}

	if digits != "" {
		n, err := strconv.Atoi(digits)
		if err != nil || n < 1 || n > excelize.TotalRows {
			return CellRef{}, fmt.Errorf("row %q out of range", digits)
		}
		ref.Row = n - 1
	}
	return ref, nil
}

func isAlpha(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// ParseRowColRef parses an R1C1-style reference like "R3C2", "Sheet1!$R3$C2",
// "R3" (whole row) or "C2" (whole column). Only absolute numeric offsets are
// accepted; bracketed relative offsets are not.
func ParseRowColRef(s string) (CellRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CellRef{}, invalidRef(s, "empty reference")
	}
	if strings.HasSuffix(s, brokenRef) {
		return CellRef{}, invalidRef(s, "broken link")
	}
	sheet, part, err := splitSheet(s)
	if err != nil {
		return CellRef{}, err
	}

	ref := CellRef{Sheet: sheet, Row: NoIndex, Col: NoIndex}
	p := strings.ToUpper(part)
	var sawRow, sawCol bool
	for p != "" {
		abs := p[0] == '$'
		if abs {
			p = p[1:]
		}
		if p == "" {
			return CellRef{}, invalidRef(s, "dangling '$' marker")
		}
		axis := p[0]
		p = p[1:]
		n := 0
		for n < len(p) && p[n] >= '0' && p[n] <= '9' {
			n++
		}
		v, err := strconv.Atoi(p[:n])
		if err != nil || v < 1 {
			return CellRef{}, invalidRef(s, "missing or invalid index")
		}
		p = p[n:]
		switch {
		case axis == 'R' && !sawRow && !sawCol:
			if v > excelize.TotalRows {
				return CellRef{}, invalidRef(s, "row out of range")
			}
			ref.Row, ref.RowAbs, sawRow = v-1, abs, true
		case axis == 'C' && !sawCol:
			if v > excelize.MaxColumns {
				return CellRef{}, invalidRef(s, "column out of range")
			}
			ref.Col, ref.ColAbs, sawCol = v-1, abs, true
		default:
			return CellRef{}, invalidRef(s, "expected R<row>C<col>")
		}
	}
	if !sawRow && !sawCol {
		return CellRef{}, invalidRef(s, "missing row and column")
	}
	return ref, nil
}

// IsWholeRow reports whether the reference has no column.
func (c CellRef) IsWholeRow() bool { return c.Col == NoIndex && c.Row != NoIndex }

// IsWholeColumn reports whether the reference has no row.
func (c CellRef) IsWholeColumn() bool { return c.Row == NoIndex && c.Col != NoIndex }

func (c CellRef) WithRow(row int) CellRef { c.Row = row; return c }
func (c CellRef) WithCol(col int) CellRef { c.Col = col; return c }
func (c CellRef) WithSheet(sheet string) CellRef { c.Sheet = sheet; return c }
func (c CellRef) WithRowAbs(abs bool) CellRef { c.RowAbs = abs; return c }
func (c CellRef) WithColAbs(abs bool) CellRef { c.ColAbs = abs; return c }

// Equal reports whether sheet, row, col and both absolute markers match.
func (c CellRef) Equal(other CellRef) bool { return c == other }

// String formats the CellRef in A1 style.
func (c CellRef) String() string { return c.FormatAsString() }

// FormatAsString formats the reference as [Sheet!][$]Col[$]Row.
func (c CellRef) FormatAsString() string {
	var b strings.Builder
	writeSheetPrefix(&b, c.Sheet)
	b.WriteString(c.CellName())
	return b.String()
}

// CellName returns just the cell part like "$A$1" without sheet name.
func (c CellRef) CellName() string {
	var b strings.Builder
	if c.Col != NoIndex {
		if c.ColAbs {
			b.WriteByte('$')
		}
		b.WriteString(ColToName(c.Col))
	}
	if c.Row != NoIndex {
		if c.RowAbs {
			b.WriteByte('$')
		}
		b.WriteString(strconv.Itoa(c.Row + 1))
	}
	return b.String()
}

// FormatAsRowColString formats the reference as [Sheet!][$]R<row>[$]C<col>.
func (c CellRef) FormatAsRowColString() string {
	var b strings.Builder
	writeSheetPrefix(&b, c.Sheet)
	if c.Row != NoIndex {
		if c.RowAbs {
			b.WriteByte('$')
		}
		b.WriteByte('R')
		b.WriteString(strconv.Itoa(c.Row + 1))
	}
	if c.Col != NoIndex {
		if c.ColAbs {
			b.WriteByte('$')
		}
		b.WriteByte('C')
		b.WriteString(strconv.Itoa(c.Col + 1))
	}
	return b.String()
}

// ColToName converts a 0-based column index to a column name.
// 0→"A", 25→"Z", 26→"AA", 702→"AAA"
func ColToName(col int) string {
	if col < 0 {
		return ""
	}
	var buf [8]byte
	i := len(buf)
	col++ // convert to 1-based for algorithm
	for col > 0 {
		col-- // adjust for 0-indexed letter
		i--
		buf[i] = byte('A' + col%26)
		col /= 26
	}
	return string(buf[i:])
}

// NameToCol converts a column name to a 0-based column index.
// "A"→0, "Z"→25, "AA"→26
func NameToCol(name string) (int, error) {
	if name == "" {
		return 0, errors.New("empty column name")
	}
	col := 0
	for i := 0; i < len(name); i++ {
		ch := name[i]
		if ch >= 'a' && ch <= 'z' {
			ch -= 'a' - 'A'
		}
		if ch < 'A' || ch > 'Z' {
			return 0, fmt.Errorf("invalid column name: %q", name)
		}
		col = col*26 + int(ch-'A') + 1
		if col > excelize.MaxColumns {
			return 0, fmt.Errorf("column %q out of range", name)
		}
	}
	return col - 1, nil
}
