// Package excel exposes an xlsx workbook as Document, Sheet, Row, Column and
// Cell handles addressed with xlref references. Handles hold only positions;
// every read and write goes straight to the underlying excelize file.
//
// A Document is not safe for concurrent use.
package excel

import (
	"fmt"
	"io"

	"github.com/javajack/xlref"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Document wraps an excelize workbook.
type Document struct {
	file *excelize.File
	opts *Options
	log  *zap.Logger
}

func newDocument(f *excelize.File, opts []Option) *Document {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Document{file: f, opts: o, log: o.logger}
}

// New creates an empty workbook with a single "Sheet1".
func New(opts ...Option) *Document {
	return newDocument(excelize.NewFile(), opts)
}

// Open opens an xlsx file.
func Open(path string, opts ...Option) (*Document, error) {
	d := newDocument(nil, opts)
	f, err := excelize.OpenFile(path, d.fileOptions())
	if err != nil {
		return nil, fmt.Errorf("open workbook %q: %w", path, err)
	}
	d.file = f
	return d, nil
}

// OpenReader reads an xlsx workbook from r.
func OpenReader(r io.Reader, opts ...Option) (*Document, error) {
	d := newDocument(nil, opts)
	f, err := excelize.OpenReader(r, d.fileOptions())
	if err != nil {
		return nil, fmt.Errorf("open workbook reader: %w", err)
	}
	d.file = f
	return d, nil
}

// FromFile wraps an already opened excelize file.
func FromFile(f *excelize.File, opts ...Option) *Document {
	return newDocument(f, opts)
}

func (d *Document) fileOptions() excelize.Options {
	return excelize.Options{Password: d.opts.password}
}

// File returns the underlying excelize file for advanced operations.
func (d *Document) File() *excelize.File {
	return d.file
}

// Sheets returns all sheets in workbook order.
func (d *Document) Sheets() []*Sheet {
	names := d.file.GetSheetList()
	sheets := make([]*Sheet, len(names))
	for i, name := range names {
		sheets[i] = &Sheet{doc: d, name: name}
	}
	return sheets
}

// Sheet returns the named sheet, or nil if the workbook has no such sheet.
// An empty name resolves to the default sheet.
func (d *Document) Sheet(name string) *Sheet {
	if name == "" {
		return d.DefaultSheet()
	}
	idx, err := d.file.GetSheetIndex(name)
	if err != nil || idx < 0 {
		return nil
	}
	return &Sheet{doc: d, name: d.file.GetSheetName(idx)}
}

// ActiveSheet returns the sheet that is selected when the workbook opens.
func (d *Document) ActiveSheet() *Sheet {
	name := d.file.GetSheetName(d.file.GetActiveSheetIndex())
	if name == "" {
		return nil
	}
	return &Sheet{doc: d, name: name}
}

// DefaultSheet returns the sheet configured with WithDefaultSheet, falling
// back to the active sheet.
func (d *Document) DefaultSheet() *Sheet {
	if d.opts.defaultSheet != "" {
		return d.Sheet(d.opts.defaultSheet)
	}
	return d.ActiveSheet()
}

// sheetFor resolves a reference's sheet name, reporting a miss as an error.
func (d *Document) sheetFor(name string) (*Sheet, error) {
	s := d.Sheet(name)
	if s == nil {
		if name == "" {
			name = d.opts.defaultSheet
		}
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	return s, nil
}

// AddSheet creates a new sheet at the end of the workbook.
func (d *Document) AddSheet(name string) (*Sheet, error) {
	if _, err := d.file.NewSheet(name); err != nil {
		return nil, fmt.Errorf("create sheet %q: %w", name, err)
	}
	return &Sheet{doc: d, name: name}, nil
}

// RemoveSheet deletes a sheet.
func (d *Document) RemoveSheet(name string) error {
	if d.Sheet(name) == nil {
		return fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	return d.file.DeleteSheet(name)
}

// RenameSheet renames a sheet.
func (d *Document) RenameSheet(oldName, newName string) error {
	if d.Sheet(oldName) == nil {
		return fmt.Errorf("%w: %q", ErrSheetNotFound, oldName)
	}
	if err := d.file.SetSheetName(oldName, newName); err != nil {
		return fmt.Errorf("rename sheet %q: %w", oldName, err)
	}
	return nil
}

// Cell resolves an A1 reference such as "Sheet1!B3" or "B3" (default sheet).
func (d *Document) Cell(ref string) (*Cell, error) {
	r, err := xlref.ParseCellRef(ref)
	if err != nil {
		return nil, err
	}
	s, err := d.sheetFor(r.Sheet)
	if err != nil {
		return nil, err
	}
	c := s.Cell(r.Row, r.Col)
	if c == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnboundedRange, r)
	}
	return c, nil
}

// Range resolves a range string to its sheet and normalised bounds.
func (d *Document) Range(rangeStr string) (*Sheet, xlref.CellRange, error) {
	r, err := xlref.ParseCellRange(rangeStr)
	if err != nil {
		return nil, xlref.CellRange{}, err
	}
	s, err := d.sheetFor(r.Sheet())
	if err != nil {
		return nil, xlref.CellRange{}, err
	}
	return s, xlref.NewCellRangeFromRefs(r.First.WithSheet(s.name), r.Last), nil
}

// Values reads a rectangular range such as "Sheet1!A1:C3" as formatted strings.
func (d *Document) Values(rangeStr string) ([][]string, error) {
	s, r, err := d.Range(rangeStr)
	if err != nil {
		return nil, err
	}
	return s.rangeValues(r)
}

// Save writes the workbook back to the path it was opened from.
func (d *Document) Save() error {
	if err := d.file.Save(d.fileOptions()); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// SaveAs writes the workbook to path.
func (d *Document) SaveAs(path string) error {
	if err := d.file.SaveAs(path, d.fileOptions()); err != nil {
		return fmt.Errorf("save workbook %q: %w", path, err)
	}
	return nil
}

// Write writes the workbook to w.
func (d *Document) Write(w io.Writer) error {
	return d.file.Write(w, d.fileOptions())
}

// Close closes the underlying excelize file.
func (d *Document) Close() error {
	return d.file.Close()
}
