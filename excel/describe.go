package excel

import (
	"fmt"
	"strings"
)

// Describe returns a human-readable outline of the workbook: each sheet
// with its used range and merged regions.
//
//	Workbook: report.xlsx
//	Sheet1 (active) A1:C4 (3x4)
//	  Merged: A5:B6, D1:E1
//	Notes empty
func (d *Document) Describe() (string, error) {
	var b strings.Builder
	b.WriteString("Workbook: ")
	if d.file.Path != "" {
		b.WriteString(d.file.Path)
	} else {
		b.WriteString("<memory>")
	}
	b.WriteByte('\n')

	active := ""
	if s := d.ActiveSheet(); s != nil {
		active = s.name
	}
	for _, s := range d.Sheets() {
		if err := s.describe(&b, s.name == active); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func (s *Sheet) describe(b *strings.Builder, active bool) error {
	b.WriteString(s.name)
	if active {
		b.WriteString(" (active)")
	}
	bounds, ok, err := s.Bounds()
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintf(b, " %s:%s %s\n", bounds.First.CellName(), bounds.Last.CellName(), bounds.Size())
	} else {
		b.WriteString(" empty\n")
	}

	regions, err := s.MergedRegions()
	if err != nil {
		return err
	}
	if len(regions) > 0 {
		names := make([]string, len(regions))
		for i, r := range regions {
			names[i] = r.First.CellName() + ":" + r.Last.CellName()
		}
		fmt.Fprintf(b, "  Merged: %s\n", strings.Join(names, ", "))
	}
	return nil
}
