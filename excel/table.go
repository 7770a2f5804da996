package excel

import (
	"fmt"

	"github.com/javajack/xlref"
)

// Record maps header names to the formatted values of one table row.
type Record map[string]string

// Table is a header-row table: the first row of its range names the
// columns and every following row is a record. Records read through the
// table are cached by row offset until the next mutation.
type Table struct {
	sheet   *Sheet
	rng     xlref.CellRange
	headers []string
	cache   map[int]Record
}

// Table opens a table over rangeStr, e.g. "A1:D20". Whole-column ranges
// such as "A:D" end at the last used row.
func (s *Sheet) Table(rangeStr string) (*Table, error) {
	rng, err := xlref.ParseCellRange(rangeStr)
	if err != nil {
		return nil, err
	}
	if rng.First.Col == xlref.NoIndex {
		return nil, fmt.Errorf("%w: table %s needs bounded columns", ErrUnboundedRange, rng)
	}
	if rng, err = s.local(rng); err != nil {
		return nil, err
	}
	if rng.First.Row == xlref.NoIndex {
		rng, err = s.clip(rng)
		if err != nil {
			return nil, err
		}
		if rng == (xlref.CellRange{}) {
			return nil, fmt.Errorf("table %s: sheet %q is empty", rangeStr, s.name)
		}
	}

	t := &Table{sheet: s, rng: rng, cache: make(map[int]Record)}
	for col := rng.FirstCol(); col <= rng.LastCol(); col++ {
		name, err := s.Cell(rng.FirstRow(), col).Value()
		if err != nil {
			return nil, err
		}
		if name == "" {
			name = xlref.ColToName(col)
		}
		t.headers = append(t.headers, name)
	}
	return t, nil
}

// Range returns the table range including the header row.
func (t *Table) Range() xlref.CellRange { return t.rng }

// Headers returns the column names.
func (t *Table) Headers() []string { return t.headers }

// Len returns the number of records below the header row.
func (t *Table) Len() int { return t.rng.RowsCount() - 1 }

// sheetRow maps a record offset to its 0-based sheet row.
func (t *Table) sheetRow(i int) int { return t.rng.FirstRow() + 1 + i }

func (t *Table) checkIndex(i, limit int) error {
	if i < 0 || i >= limit {
		return fmt.Errorf("%w: record %d of %d", ErrIndexOutOfRange, i, limit)
	}
	return nil
}

// Record returns the record at offset i (0 = first row below the header).
func (t *Table) Record(i int) (Record, error) {
	if err := t.checkIndex(i, t.Len()); err != nil {
		return nil, err
	}
	if rec, ok := t.cache[i]; ok {
		return rec, nil
	}
	rec := make(Record, len(t.headers))
	row := t.sheetRow(i)
	for j, h := range t.headers {
		v, err := t.sheet.Cell(row, t.rng.FirstCol()+j).Value()
		if err != nil {
			return nil, err
		}
		rec[h] = v
	}
	t.cache[i] = rec
	return rec, nil
}

// Records returns every record in order.
func (t *Table) Records() ([]Record, error) {
	out := make([]Record, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		rec, err := t.Record(i)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// Filter returns the records for which expression is true. Header names are
// variables, numeric cells compare as numbers, _row holds the 1-based sheet
// row and _record the whole record for headers that are not identifiers:
//
//	Age >= 30 && Dept == "Sales"
//	_record["First Name"] startsWith "A"
func (t *Table) Filter(expression string) ([]Record, error) {
	program, err := compileFilter(expression)
	if err != nil {
		return nil, err
	}
	var out []Record
	for i := 0; i < t.Len(); i++ {
		rec, err := t.Record(i)
		if err != nil {
			return nil, err
		}
		env := make(map[string]any, len(rec)+2)
		raw := make(map[string]any, len(rec))
		for k, v := range rec {
			env[k] = typedValue(v)
			raw[k] = v
		}
		env["_row"] = t.sheetRow(i) + 1
		env["_record"] = raw
		ok, err := matches(program, env)
		if err != nil {
			return nil, fmt.Errorf("filter %q at row %d: %w", expression, t.sheetRow(i)+1, err)
		}
		if ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (t *Table) invalidate() {
	clear(t.cache)
}

// write stores the fields of rec that name a header; other keys are ignored.
func (t *Table) write(row int, rec map[string]any) error {
	for j, h := range t.headers {
		v, ok := rec[h]
		if !ok {
			continue
		}
		if err := t.sheet.Cell(row, t.rng.FirstCol()+j).SetValue(v); err != nil {
			return err
		}
	}
	return nil
}

// Append writes rec on the row below the table and grows the table by one row.
func (t *Table) Append(rec map[string]any) error {
	t.invalidate()
	row := t.rng.LastRow() + 1
	if err := t.write(row, rec); err != nil {
		return err
	}
	t.rng = xlref.NewCellRangeFromRefs(t.rng.First, t.rng.Last.WithRow(row))
	return nil
}

// Insert shifts the sheet rows from offset i down and writes rec at i.
// i == Len() appends.
func (t *Table) Insert(i int, rec map[string]any) error {
	if err := t.checkIndex(i, t.Len()+1); err != nil {
		return err
	}
	t.invalidate()
	row := t.sheetRow(i)
	if err := t.sheet.InsertRows(row, 1); err != nil {
		return err
	}
	t.rng = xlref.NewCellRangeFromRefs(t.rng.First, t.rng.Last.WithRow(t.rng.LastRow()+1))
	return t.write(row, rec)
}

// Update overwrites the fields of record i that rec names.
func (t *Table) Update(i int, rec map[string]any) error {
	if err := t.checkIndex(i, t.Len()); err != nil {
		return err
	}
	t.invalidate()
	return t.write(t.sheetRow(i), rec)
}

// Remove deletes the sheet row of record i and shrinks the table.
func (t *Table) Remove(i int) error {
	if err := t.checkIndex(i, t.Len()); err != nil {
		return err
	}
	t.invalidate()
	if err := t.sheet.RemoveRow(t.sheetRow(i)); err != nil {
		return err
	}
	t.rng = xlref.NewCellRangeFromRefs(t.rng.First, t.rng.Last.WithRow(t.rng.LastRow()-1))
	return nil
}
