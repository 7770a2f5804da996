package excel

import (
	"errors"
	"testing"

	"github.com/javajack/xlref"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRef(t *testing.T, s string) xlref.CellRef {
	t.Helper()
	r, err := xlref.ParseCellRef(s)
	require.NoError(t, err)
	return r
}

func TestSession_CommitAppliesInOrder(t *testing.T) {
	d := newTestDocument(t)
	sess := d.NewSession()
	require.NotEmpty(t, sess.ID())

	sess.SetValue(mustRef(t, "A1"), "first").
		SetValue(mustRef(t, "A1"), "second").
		SetValue(mustRef(t, "Sheet1!B1"), 10).
		SetFormula(mustRef(t, "C1"), "=B1*2").
		Merge(mustRange(t, "A3:B4"))
	assert.Equal(t, 5, sess.Pending())

	require.NoError(t, sess.Commit())
	assert.Zero(t, sess.Pending())

	out := reopen(t, d)
	v, err := out.File().GetCellValue("Sheet1", "A1")
	require.NoError(t, err)
	assert.Equal(t, "second", v)
	f, err := out.File().GetCellFormula("Sheet1", "C1")
	require.NoError(t, err)
	assert.Equal(t, "B1*2", f)
	assert.Equal(t, []string{"Sheet1!A3:B4"}, regionNames(t, out.Sheet("Sheet1")))
}

func TestSession_ValidationFailureAppliesNothing(t *testing.T) {
	d := newTestDocument(t)
	sess := d.NewSession().
		SetValue(mustRef(t, "A1"), "kept out").
		SetValue(mustRef(t, "Missing!A1"), "boom")

	err := sess.Commit()
	require.Error(t, err)

	var ue *UpdateError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, sess.ID(), ue.SessionID)
	assert.Equal(t, 1, ue.Index)
	assert.Equal(t, "set Missing!A1", ue.Request)
	assert.ErrorIs(t, err, ErrSheetNotFound)
	assert.Zero(t, sess.Pending())

	v, err := d.Sheet("Sheet1").Cell(0, 0).Value()
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestSession_RejectsUnboundedRequests(t *testing.T) {
	d := newTestDocument(t)

	err := d.NewSession().Merge(mustRange(t, "A:B")).Commit()
	assert.ErrorIs(t, err, ErrUnboundedRange)

	err = d.NewSession().SetValue(mustRef(t, "4"), 1).Commit()
	assert.ErrorIs(t, err, ErrUnboundedRange)
}

func TestSession_ClearAndUnmerge(t *testing.T) {
	d := newStaffDocument(t)
	_, err := d.Sheet("Sheet1").MergeString("A6:C6")
	require.NoError(t, err)

	err = d.NewSession().
		Clear(mustRange(t, "B2:C3")).
		Unmerge(mustRange(t, "B6")).
		Commit()
	require.NoError(t, err)

	values, err := d.Values("A2:C3")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Alice", "", ""}, {"Bob", "", ""}}, values)
	assert.Empty(t, regionNames(t, d.Sheet("Sheet1")))
}

func TestSession_ClearWholeColumnClipsToUsedArea(t *testing.T) {
	d := newStaffDocument(t)

	require.NoError(t, d.NewSession().Clear(mustRange(t, "B:B")).Commit())

	values, err := d.Values("A1:C4")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Name", "", "Dept"},
		{"Alice", "", "Sales"},
		{"Bob", "", "Ops"},
		{"Carol", "", "Sales"},
	}, values)

	// Nothing left to clear in an unused row.
	require.NoError(t, d.NewSession().Clear(mustRange(t, "9:9")).Commit())
}

func TestSession_DiscardAndReuse(t *testing.T) {
	logger, logs := observedLogger()
	d := newTestDocument(t, WithLogger(logger))
	sess := d.NewSession().SetValue(mustRef(t, "A1"), "dropped")
	sess.Discard()
	require.NoError(t, sess.Commit())

	require.NoError(t, sess.SetValue(mustRef(t, "A2"), "kept").Commit())

	v, err := d.Sheet("Sheet1").Cell(0, 0).Value()
	require.NoError(t, err)
	assert.Empty(t, v)
	v, err = d.Sheet("Sheet1").Cell(1, 0).Value()
	require.NoError(t, err)
	assert.Equal(t, "kept", v)

	entries := logs.FilterMessage("session committed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, sess.ID(), entries[0].ContextMap()["session"])
}

func TestSession_FailureIsLogged(t *testing.T) {
	logger, logs := observedLogger()
	d := newTestDocument(t, WithLogger(logger))

	err := d.NewSession().Merge(mustRange(t, "Nope!A1:B2")).Commit()
	require.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("session aborted").Len())
}
