package xlref

import (
	"strings"
	"unicode"
)

// NeedsQuoting reports whether a sheet name must be wrapped in single quotes
// when used as a reference prefix: it starts with a digit, contains anything
// other than letters, digits, '.' and '_', reads like a cell reference, or
// is a boolean literal.
func NeedsQuoting(sheet string) bool {
	if sheet == "" {
		return false
	}
	for i, r := range sheet {
		if i == 0 && unicode.IsDigit(r) {
			return true
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.' && r != '_' {
			return true
		}
	}
	if strings.EqualFold(sheet, "TRUE") || strings.EqualFold(sheet, "FALSE") {
		return true
	}
	return looksLikeCellRef(sheet) || looksLikeRowColRef(sheet)
}

// looksLikeCellRef matches letters followed by digits within sheet bounds, e.g. "A1" or "xfd20".
func looksLikeCellRef(s string) bool {
	i := 0
	for i < len(s) && isAlpha(s[i]) {
		i++
	}
	if i == 0 || i == len(s) {
		return false
	}
	ref, err := parseCellPart(s)
	return err == nil && ref.Row != NoIndex && ref.Col != NoIndex
}

// looksLikeRowColRef matches R1C1 forms such as "R1C1", "R2" or "c3".
func looksLikeRowColRef(s string) bool {
	_, err := ParseRowColRef(s)
	return err == nil
}

// QuoteSheetName returns the sheet name as it appears before '!': quoted,
// with embedded quotes doubled, when NeedsQuoting says so.
func QuoteSheetName(sheet string) string {
	if !NeedsQuoting(sheet) {
		return sheet
	}
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
}

func writeSheetPrefix(b *strings.Builder, sheet string) {
	if sheet == "" {
		return
	}
	b.WriteString(QuoteSheetName(sheet))
	b.WriteByte('!')
}
