package excel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestCell_TypedGetters(t *testing.T) {
	d := newTestDocument(t)
	s := d.Sheet("Sheet1")
	require.NoError(t, s.Cell(0, 0).SetValue(3.5))
	require.NoError(t, s.Cell(0, 1).SetValue(42))
	require.NoError(t, s.Cell(0, 2).SetValue(true))
	require.NoError(t, s.Cell(0, 3).SetValue("hello"))
	require.NoError(t, s.Cell(0, 4).SetValue(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)))

	f, err := s.Cell(0, 0).Float()
	require.NoError(t, err)
	assert.InDelta(t, 3.5, f, 1e-9)

	n, err := s.Cell(0, 1).Int()
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	b, err := s.Cell(0, 2).Bool()
	require.NoError(t, err)
	assert.True(t, b)
	typ, err := s.Cell(0, 2).Type()
	require.NoError(t, err)
	assert.Equal(t, excelize.CellTypeBool, typ)

	_, err = s.Cell(0, 3).Float()
	assert.Error(t, err)
	_, err = s.Cell(0, 3).Bool()
	assert.Error(t, err)

	tm, err := s.Cell(0, 4).Time()
	require.NoError(t, err)
	assert.Equal(t, 2024, tm.Year())
	assert.Equal(t, time.March, tm.Month())
	assert.Equal(t, 15, tm.Day())
}

func TestCell_IntOutOfRange(t *testing.T) {
	d := newTestDocument(t)
	s := d.Sheet("Sheet1")
	require.NoError(t, s.Cell(0, 0).SetValue(1e300))
	require.NoError(t, s.Cell(1, 0).SetValue(-1e300))

	_, err := s.Cell(0, 0).Int()
	assert.ErrorContains(t, err, "out of range")
	_, err = s.Cell(1, 0).Int()
	assert.ErrorContains(t, err, "out of range")
}

func TestCell_FormulaAndClear(t *testing.T) {
	d := newTestDocument(t)
	s := d.Sheet("Sheet1")
	c := s.Cell(1, 1)

	assert.False(t, c.IsDefined())
	require.NoError(t, c.SetFormula("=SUM(A1:A2)"))
	assert.True(t, c.IsDefined())
	f, err := c.Formula()
	require.NoError(t, err)
	assert.Equal(t, "SUM(A1:A2)", f)

	require.NoError(t, c.Clear())
	assert.False(t, c.IsDefined())
	f, err = c.Formula()
	require.NoError(t, err)
	assert.Empty(t, f)
}

func TestCell_Ref(t *testing.T) {
	d := newTestDocument(t)
	sheet, err := d.AddSheet("My Data")
	require.NoError(t, err)

	c := sheet.Cell(9, 27)
	assert.Equal(t, "'My Data'!AB10", c.Ref().String())
	assert.Equal(t, 9, c.Row())
	assert.Equal(t, 27, c.Col())
	assert.Nil(t, sheet.Cell(-1, 0))
}

func TestCell_Hyperlink(t *testing.T) {
	d := newTestDocument(t)
	s := d.Sheet("Sheet1")
	_, err := d.AddSheet("Data")
	require.NoError(t, err)

	require.NoError(t, s.Cell(0, 0).SetHyperlink(Hyperlink{Target: "https://example.com", Display: "Example"}))
	require.NoError(t, s.Cell(1, 0).SetHyperlink(Hyperlink{Target: "Data!B2"}))

	out := reopen(t, d)
	link, ok, err := out.Sheet("Sheet1").Cell(0, 0).Hyperlink()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Hyperlink{Target: "https://example.com", Display: "Example"}, link)

	link, ok, err = out.Sheet("Sheet1").Cell(1, 0).Hyperlink()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Data!B2", link.Target)
	assert.Equal(t, "Data!B2", link.Display)

	_, ok, err = out.Sheet("Sheet1").Cell(2, 0).Hyperlink()
	require.NoError(t, err)
	assert.False(t, ok)
}
