package excel

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// newTestDocument creates an empty in-memory workbook closed at test end.
func newTestDocument(t *testing.T, opts ...Option) *Document {
	t.Helper()
	d := New(opts...)
	t.Cleanup(func() { d.Close() })
	return d
}

// newStaffDocument creates a workbook with a small header table on Sheet1.
// Layout:
//
//	A1: "Name"   B1: "Age"  C1: "Dept"
//	A2: "Alice"  B2: 34     C2: "Sales"
//	A3: "Bob"    B3: 27     C3: "Ops"
//	A4: "Carol"  B4: 41     C4: "Sales"
func newStaffDocument(t *testing.T, opts ...Option) *Document {
	t.Helper()
	d := newTestDocument(t, opts...)
	require.NoError(t, d.Sheet("Sheet1").SetValues("A1", [][]any{
		{"Name", "Age", "Dept"},
		{"Alice", 34, "Sales"},
		{"Bob", 27, "Ops"},
		{"Carol", 41, "Sales"},
	}))
	return d
}

// reopen round-trips the workbook through its serialized form.
func reopen(t *testing.T, d *Document) *Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, d.Write(&buf))
	out, err := OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { out.Close() })
	return out
}

// observedLogger returns a debug-level logger whose entries can be inspected.
func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}
