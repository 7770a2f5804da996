package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/javajack/xlref"
)

// Hyperlink is a clickable link stored on a cell. Target is a URL or a
// sheet-qualified reference such as "Data!B2" for a link inside the workbook.
type Hyperlink struct {
	Target  string
	Display string
	Tooltip string
}

// String returns the display text, falling back to the target.
func (h Hyperlink) String() string {
	if h.Display != "" {
		return h.Display
	}
	return h.Target
}

// internal reports whether the target addresses a cell of this workbook.
func (h Hyperlink) internal() bool {
	ref, err := xlref.ParseCellRef(h.Target)
	return err == nil && ref.Sheet != ""
}

// SetHyperlink writes the link and its display text to the cell.
func (c *Cell) SetHyperlink(h Hyperlink) error {
	linkType := "External"
	if h.internal() {
		linkType = "Location"
	}
	display := h.String()
	opts := excelize.HyperlinkOpts{Display: &display}
	if h.Tooltip != "" {
		opts.Tooltip = &h.Tooltip
	}
	if err := c.file().SetCellHyperLink(c.sheet.name, c.name(), h.Target, linkType, opts); err != nil {
		return fmt.Errorf("set hyperlink %s: %w", c.Ref(), err)
	}
	return c.SetValue(display)
}

// Hyperlink returns the cell's link target and formatted value, if any.
func (c *Cell) Hyperlink() (Hyperlink, bool, error) {
	ok, target, err := c.file().GetCellHyperLink(c.sheet.name, c.name())
	if err != nil || !ok {
		return Hyperlink{}, false, err
	}
	display, err := c.Value()
	if err != nil {
		return Hyperlink{}, false, err
	}
	return Hyperlink{Target: target, Display: display}, true, nil
}
