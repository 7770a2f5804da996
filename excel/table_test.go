package excel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staffTable(t *testing.T) (*Document, *Table) {
	t.Helper()
	d := newStaffDocument(t)
	tbl, err := d.Sheet("Sheet1").Table("A1:C4")
	require.NoError(t, err)
	return d, tbl
}

func names(recs []Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r["Name"]
	}
	return out
}

func TestTable_Records(t *testing.T) {
	_, tbl := staffTable(t)

	assert.Equal(t, []string{"Name", "Age", "Dept"}, tbl.Headers())
	assert.Equal(t, 3, tbl.Len())

	rec, err := tbl.Record(1)
	require.NoError(t, err)
	assert.Equal(t, Record{"Name": "Bob", "Age": "27", "Dept": "Ops"}, rec)

	recs, err := tbl.Records()
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, names(recs))

	_, err = tbl.Record(3)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = tbl.Record(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestTable_WholeColumnRange(t *testing.T) {
	d := newStaffDocument(t)
	s := d.Sheet("Sheet1")
	require.NoError(t, s.Cell(0, 4).SetValue("skip"))

	tbl, err := s.Table("A:C")
	require.NoError(t, err)
	assert.Equal(t, "Sheet1!A1:C4", tbl.Range().String())
	assert.Equal(t, 3, tbl.Len())

	_, err = s.Table("2:4")
	assert.ErrorIs(t, err, ErrUnboundedRange)

	empty, err := d.AddSheet("Empty")
	require.NoError(t, err)
	_, err = empty.Table("A:B")
	assert.Error(t, err)
}

func TestTable_BlankHeaderUsesColumnName(t *testing.T) {
	d := newStaffDocument(t)
	s := d.Sheet("Sheet1")
	require.NoError(t, s.Cell(0, 1).Clear())

	tbl, err := s.Table("A1:C4")
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "B", "Dept"}, tbl.Headers())
}

func TestTable_Filter(t *testing.T) {
	_, tbl := staffTable(t)

	tests := []struct {
		expr string
		want []string
	}{
		{`Age >= 30`, []string{"Alice", "Carol"}},
		{`Dept == "Sales" && Age < 40`, []string{"Alice"}},
		{`_row == 3`, []string{"Bob"}},
		{`_record["Name"] startsWith "C"`, []string{"Carol"}},
		{`Missing == nil`, []string{"Alice", "Bob", "Carol"}},
		{`Age > 100`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			recs, err := tbl.Filter(tt.expr)
			require.NoError(t, err)
			if tt.want == nil {
				assert.Empty(t, recs)
				return
			}
			assert.Equal(t, tt.want, names(recs))
		})
	}
}

func TestTable_FilterErrors(t *testing.T) {
	_, tbl := staffTable(t)

	_, err := tbl.Filter(`Age >=`)
	assert.Error(t, err)

	_, err = tbl.Filter(`Name`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected bool")
}

func TestTable_AppendAndInsert(t *testing.T) {
	d, tbl := staffTable(t)

	require.NoError(t, tbl.Append(map[string]any{"Name": "Dave", "Age": 52, "Extra": "ignored"}))
	assert.Equal(t, 4, tbl.Len())
	assert.Equal(t, "Sheet1!A1:C5", tbl.Range().String())

	require.NoError(t, tbl.Insert(0, map[string]any{"Name": "Zed", "Dept": "Ops"}))
	recs, err := tbl.Records()
	require.NoError(t, err)
	assert.Equal(t, []string{"Zed", "Alice", "Bob", "Carol", "Dave"}, names(recs))
	assert.Equal(t, "", recs[0]["Age"])

	v, err := d.Sheet("Sheet1").Cell(5, 1).Value()
	require.NoError(t, err)
	assert.Equal(t, "52", v)

	assert.ErrorIs(t, tbl.Insert(7, map[string]any{}), ErrIndexOutOfRange)
}

func TestTable_UpdateAndRemove(t *testing.T) {
	_, tbl := staffTable(t)

	rec, err := tbl.Record(0)
	require.NoError(t, err)
	assert.Equal(t, "34", rec["Age"])

	require.NoError(t, tbl.Update(0, map[string]any{"Age": 35}))
	rec, err = tbl.Record(0)
	require.NoError(t, err)
	assert.Equal(t, "35", rec["Age"])
	assert.Equal(t, "Alice", rec["Name"])

	require.NoError(t, tbl.Remove(1))
	assert.Equal(t, 2, tbl.Len())
	recs, err := tbl.Records()
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Carol"}, names(recs))

	assert.ErrorIs(t, tbl.Remove(2), ErrIndexOutOfRange)
	assert.ErrorIs(t, tbl.Update(-1, nil), ErrIndexOutOfRange)
}
