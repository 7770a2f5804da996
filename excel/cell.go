package excel

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/javajack/xlref"
	"github.com/xuri/excelize/v2"
)

// Cell is a handle to one cell position on a sheet.
type Cell struct {
	sheet *Sheet
	row   int
	col   int
}

// Ref returns the sheet-qualified reference of the cell.
func (c *Cell) Ref() xlref.CellRef {
	return xlref.NewCellRef(c.sheet.name, c.row, c.col)
}

// Row returns the 0-based row index.
func (c *Cell) Row() int { return c.row }

// Col returns the 0-based column index.
func (c *Cell) Col() int { return c.col }

// Sheet returns the sheet the cell belongs to.
func (c *Cell) Sheet() *Sheet { return c.sheet }

func (c *Cell) name() string {
	return xlref.NewCellRef("", c.row, c.col).CellName()
}

func (c *Cell) file() *excelize.File {
	return c.sheet.doc.file
}

// Value returns the cell value formatted with its number format applied.
// Every cell of a merged region reads the value of its top-left cell, and
// writes through any of them land on the top-left cell as well.
func (c *Cell) Value() (string, error) {
	v, err := c.file().GetCellValue(c.sheet.name, c.name())
	if err != nil {
		return "", fmt.Errorf("read cell %s: %w", c.Ref(), err)
	}
	return v, nil
}

// Raw returns the stored cell value without number formatting.
func (c *Cell) Raw() (string, error) {
	v, err := c.file().GetCellValue(c.sheet.name, c.name(), excelize.Options{RawCellValue: true})
	if err != nil {
		return "", fmt.Errorf("read cell %s: %w", c.Ref(), err)
	}
	return v, nil
}

// Type returns the stored cell type. Numbers written by excelize carry no
// explicit type and report excelize.CellTypeUnset.
func (c *Cell) Type() (excelize.CellType, error) {
	return c.file().GetCellType(c.sheet.name, c.name())
}

// Formula returns the cell formula without the leading '='.
func (c *Cell) Formula() (string, error) {
	return c.file().GetCellFormula(c.sheet.name, c.name())
}

// IsDefined reports whether the cell holds a value or a formula.
func (c *Cell) IsDefined() bool {
	if v, err := c.Raw(); err == nil && v != "" {
		return true
	}
	f, err := c.Formula()
	return err == nil && f != ""
}

// Float returns the cell as a float64.
func (c *Cell) Float() (float64, error) {
	raw, err := c.Raw()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("cell %s is not numeric: %w", c.Ref(), err)
	}
	return v, nil
}

// Int returns the cell as an int, truncating any fraction.
func (c *Cell) Int() (int, error) {
	v, err := c.Float()
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || v < math.MinInt || v >= math.MaxInt {
		return 0, fmt.Errorf("cell %s: %v is out of range for int", c.Ref(), v)
	}
	return int(v), nil
}

// Bool returns the cell as a bool. Boolean cells store "1" or "0"; text
// cells may hold "TRUE" or "FALSE".
func (c *Cell) Bool() (bool, error) {
	raw, err := c.Raw()
	if err != nil {
		return false, err
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, fmt.Errorf("cell %s is not boolean: %w", c.Ref(), err)
	}
	return v, nil
}

// Time returns a date cell as a time.Time, honouring the workbook's 1904
// date system.
func (c *Cell) Time() (time.Time, error) {
	serial, err := c.Float()
	if err != nil {
		return time.Time{}, err
	}
	use1904 := false
	if props, err := c.file().GetWorkbookProps(); err == nil && props.Date1904 != nil {
		use1904 = *props.Date1904
	}
	return excelize.ExcelDateToTime(serial, use1904)
}

// SetValue writes a value, keeping the cell style.
func (c *Cell) SetValue(v any) error {
	if err := c.file().SetCellValue(c.sheet.name, c.name(), v); err != nil {
		return fmt.Errorf("write cell %s: %w", c.Ref(), err)
	}
	return nil
}

// SetFormula sets a formula on the cell.
func (c *Cell) SetFormula(formula string) error {
	formula = strings.TrimPrefix(formula, "=")
	if err := c.file().SetCellFormula(c.sheet.name, c.name(), formula); err != nil {
		return fmt.Errorf("write formula %s: %w", c.Ref(), err)
	}
	return nil
}

// Clear removes the value and formula, keeping the style.
func (c *Cell) Clear() error {
	if err := c.file().SetCellFormula(c.sheet.name, c.name(), ""); err != nil {
		return fmt.Errorf("clear cell %s: %w", c.Ref(), err)
	}
	return c.SetValue(nil)
}

// MergedRegion returns the merged region containing the cell, if any.
func (c *Cell) MergedRegion() (xlref.CellRange, bool, error) {
	return c.sheet.MergedRegionAt(c.row, c.col)
}
