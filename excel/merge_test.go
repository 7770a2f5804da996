package excel

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/javajack/xlref"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRange(t *testing.T, s string) xlref.CellRange {
	t.Helper()
	r, err := xlref.ParseCellRange(s)
	require.NoError(t, err)
	return r
}

func regionNames(t *testing.T, s *Sheet) []string {
	t.Helper()
	regions, err := s.MergedRegions()
	require.NoError(t, err)
	names := make([]string, len(regions))
	for i, r := range regions {
		names[i] = r.String()
	}
	return names
}

func TestMerge_Basic(t *testing.T) {
	d := newTestDocument(t)
	s := d.Sheet("Sheet1")
	require.NoError(t, s.Cell(0, 0).SetValue("Header"))

	top, err := s.MergeString("A1:C1")
	require.NoError(t, err)
	assert.Equal(t, "Sheet1!A1", top.Ref().String())

	out := reopen(t, d)
	merges, err := out.File().GetMergeCells("Sheet1")
	require.NoError(t, err)
	require.Len(t, merges, 1)
	assert.Equal(t, "A1", merges[0].GetStartAxis())
	assert.Equal(t, "C1", merges[0].GetEndAxis())
	assert.Equal(t, "Header", merges[0].GetCellValue())
}

func TestMerge_SheetNameIgnoresCase(t *testing.T) {
	d := newTestDocument(t)
	s := d.Sheet("sheet1")
	require.NotNil(t, s)

	top, err := s.MergeString("sheet1!A1:B2")
	require.NoError(t, err)
	assert.Equal(t, "Sheet1!A1", top.Ref().String())
	assert.Equal(t, []string{"Sheet1!A1:B2"}, regionNames(t, s))
}

func TestMerge_ReplacesIntersectingRegions(t *testing.T) {
	d := newTestDocument(t)
	s := d.Sheet("Sheet1")

	_, err := s.MergeString("A1:B2")
	require.NoError(t, err)
	_, err = s.MergeString("B2:C3")
	require.NoError(t, err)

	if diff := cmp.Diff([]string{"Sheet1!B2:C3"}, regionNames(t, s)); diff != "" {
		t.Errorf("merged regions mismatch (-want +got):\n%s", diff)
	}
}

func TestMerge_KeepsDisjointRegions(t *testing.T) {
	d := newTestDocument(t)
	s := d.Sheet("Sheet1")

	_, err := s.MergeString("A1:B1")
	require.NoError(t, err)
	_, err = s.MergeString("D4:E5")
	require.NoError(t, err)
	_, err = s.MergeString("A2:B3")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"Sheet1!A1:B1", "Sheet1!D4:E5", "Sheet1!A2:B3"}, regionNames(t, s))
}

func TestMerge_SingleCellOnlyUnmerges(t *testing.T) {
	d := newTestDocument(t)
	s := d.Sheet("Sheet1")

	_, err := s.MergeString("A1:C3")
	require.NoError(t, err)
	top, err := s.MergeString("B2")
	require.NoError(t, err)
	assert.Equal(t, 1, top.Row())
	assert.Equal(t, 1, top.Col())
	assert.Empty(t, regionNames(t, s))
}

func TestMerge_InvertedRange(t *testing.T) {
	d := newTestDocument(t)
	s := d.Sheet("Sheet1")

	top, err := s.MergeString("C3:A1")
	require.NoError(t, err)
	assert.Equal(t, "Sheet1!A1", top.Ref().String())
	assert.Equal(t, []string{"Sheet1!A1:C3"}, regionNames(t, s))
}

func TestMerge_Rejects(t *testing.T) {
	d := newTestDocument(t)
	s := d.Sheet("Sheet1")

	_, err := s.MergeString("A:B")
	assert.ErrorIs(t, err, ErrUnboundedRange)

	_, err = s.MergeString("2:3")
	assert.ErrorIs(t, err, ErrUnboundedRange)

	_, err = s.MergeString("Other!A1:B2")
	assert.ErrorIs(t, err, ErrSheetMismatch)

	_, err = s.MergeString("A1:")
	assert.ErrorIs(t, err, xlref.ErrInvalidReference)
}

func TestMerge_Logs(t *testing.T) {
	logger, logs := observedLogger()
	d := newTestDocument(t, WithLogger(logger))
	s := d.Sheet("Sheet1")

	_, err := s.MergeString("A1:B2")
	require.NoError(t, err)
	_, err = s.MergeString("B1:C1")
	require.NoError(t, err)

	entries := logs.FilterMessage("merged cells").All()
	require.Len(t, entries, 2)
	fields := entries[1].ContextMap()
	assert.Equal(t, "Sheet1", fields["sheet"])
	assert.Equal(t, "Sheet1!B1:C1", fields["range"])
	assert.EqualValues(t, 1, fields["replaced"])
}

func TestUnmerge_RemovesEveryIntersectingRegion(t *testing.T) {
	d := newTestDocument(t)
	s := d.Sheet("Sheet1")

	for _, r := range []string{"A1:B2", "D1:E2", "A5:B6"} {
		_, err := s.MergeString(r)
		require.NoError(t, err)
	}

	removed, err := s.Unmerge(mustRange(t, "B2:D2"))
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Equal(t, []string{"Sheet1!A5:B6"}, regionNames(t, s))

	removed, err = s.Unmerge(mustRange(t, "H8"))
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestMergedRegionAt(t *testing.T) {
	d := newTestDocument(t)
	s := d.Sheet("Sheet1")
	_, err := s.MergeString("B2:C4")
	require.NoError(t, err)

	r, ok, err := s.Cell(3, 2).MergedRegion()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Sheet1!B2:C4", r.String())

	_, ok, err = s.Cell(0, 0).MergedRegion()
	require.NoError(t, err)
	assert.False(t, ok)
}
