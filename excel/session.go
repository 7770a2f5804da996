package excel

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/javajack/xlref"
	"go.uber.org/zap"
)

// Session accumulates mutations against a Document and applies them as one
// batch on Commit. It belongs to the caller that created it and is not safe
// for concurrent use.
type Session struct {
	id       string
	doc      *Document
	requests []request
}

// request is one pending mutation. validate runs for the whole batch before
// any apply.
type request interface {
	fmt.Stringer
	validate(d *Document) error
	apply(d *Document) error
}

// NewSession starts an empty batch.
func (d *Document) NewSession() *Session {
	return &Session{id: uuid.NewString(), doc: d}
}

// ID returns the session identifier used in logs and errors.
func (s *Session) ID() string { return s.id }

// Pending returns the number of queued requests.
func (s *Session) Pending() int { return len(s.requests) }

// Discard drops every queued request.
func (s *Session) Discard() {
	s.requests = nil
}

// SetValue queues a value write.
func (s *Session) SetValue(ref xlref.CellRef, value any) *Session {
	s.requests = append(s.requests, &setValueRequest{ref: ref, value: value})
	return s
}

// SetFormula queues a formula write.
func (s *Session) SetFormula(ref xlref.CellRef, formula string) *Session {
	s.requests = append(s.requests, &setFormulaRequest{ref: ref, formula: formula})
	return s
}

// Clear queues clearing every cell in rng.
func (s *Session) Clear(rng xlref.CellRange) *Session {
	s.requests = append(s.requests, &clearRequest{rng: rng})
	return s
}

// Merge queues a merge of rng.
func (s *Session) Merge(rng xlref.CellRange) *Session {
	s.requests = append(s.requests, &mergeRequest{rng: rng})
	return s
}

// Unmerge queues removal of every merged region intersecting rng.
func (s *Session) Unmerge(rng xlref.CellRange) *Session {
	s.requests = append(s.requests, &unmergeRequest{rng: rng})
	return s
}

// Commit validates the whole batch, then applies it in order. On failure it
// returns an *UpdateError and the batch is dropped; when validation fails
// nothing has been applied.
func (s *Session) Commit() error {
	batch := s.requests
	s.requests = nil
	if len(batch) == 0 {
		return nil
	}
	for i, r := range batch {
		if err := r.validate(s.doc); err != nil {
			return s.fail(i, r, err)
		}
	}
	for i, r := range batch {
		if err := r.apply(s.doc); err != nil {
			return s.fail(i, r, err)
		}
	}
	s.doc.log.Debug("session committed",
		zap.String("session", s.id),
		zap.Int("requests", len(batch)))
	return nil
}

func (s *Session) fail(i int, r request, err error) error {
	s.doc.log.Warn("session aborted",
		zap.String("session", s.id),
		zap.Int("index", i),
		zap.Stringer("request", r),
		zap.Error(err))
	return &UpdateError{SessionID: s.id, Index: i, Request: r.String(), Err: err}
}

func cellFor(d *Document, ref xlref.CellRef) (*Cell, error) {
	sheet, err := d.sheetFor(ref.Sheet)
	if err != nil {
		return nil, err
	}
	c := sheet.Cell(ref.Row, ref.Col)
	if c == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnboundedRange, ref)
	}
	return c, nil
}

func sheetForRange(d *Document, rng xlref.CellRange) (*Sheet, xlref.CellRange, error) {
	sheet, err := d.sheetFor(rng.Sheet())
	if err != nil {
		return nil, xlref.CellRange{}, err
	}
	rng, err = sheet.bounded(xlref.NewCellRangeFromRefs(rng.First.WithSheet(""), rng.Last))
	if err != nil {
		return nil, xlref.CellRange{}, err
	}
	return sheet, rng, nil
}

type setValueRequest struct {
	ref   xlref.CellRef
	value any
}

func (r *setValueRequest) String() string { return "set " + r.ref.String() }

func (r *setValueRequest) validate(d *Document) error {
	_, err := cellFor(d, r.ref)
	return err
}

func (r *setValueRequest) apply(d *Document) error {
	c, err := cellFor(d, r.ref)
	if err != nil {
		return err
	}
	return c.SetValue(r.value)
}

type setFormulaRequest struct {
	ref     xlref.CellRef
	formula string
}

func (r *setFormulaRequest) String() string { return "formula " + r.ref.String() }

func (r *setFormulaRequest) validate(d *Document) error {
	_, err := cellFor(d, r.ref)
	return err
}

func (r *setFormulaRequest) apply(d *Document) error {
	c, err := cellFor(d, r.ref)
	if err != nil {
		return err
	}
	return c.SetFormula(r.formula)
}

type clearRequest struct {
	rng xlref.CellRange
}

func (r *clearRequest) String() string { return "clear " + r.rng.String() }

// target resolves the cells to clear. Whole-row and whole-column ranges are
// clipped to the used area, so the result may be the zero range.
func (r *clearRequest) target(d *Document) (*Sheet, xlref.CellRange, error) {
	sheet, err := d.sheetFor(r.rng.Sheet())
	if err != nil {
		return nil, xlref.CellRange{}, err
	}
	rng, err := sheet.local(xlref.NewCellRangeFromRefs(r.rng.First.WithSheet(""), r.rng.Last))
	if err != nil {
		return nil, xlref.CellRange{}, err
	}
	if rng, err = sheet.clip(rng); err != nil {
		return nil, xlref.CellRange{}, err
	}
	return sheet, rng, nil
}

func (r *clearRequest) validate(d *Document) error {
	_, _, err := r.target(d)
	return err
}

func (r *clearRequest) apply(d *Document) error {
	sheet, rng, err := r.target(d)
	if err != nil {
		return err
	}
	if rng == (xlref.CellRange{}) {
		return nil
	}
	for _, ref := range rng.Cells(0, 0) {
		if err := sheet.CellByRef(ref).Clear(); err != nil {
			return err
		}
	}
	return nil
}

type mergeRequest struct {
	rng xlref.CellRange
}

func (r *mergeRequest) String() string { return "merge " + r.rng.String() }

func (r *mergeRequest) validate(d *Document) error {
	_, _, err := sheetForRange(d, r.rng)
	return err
}

func (r *mergeRequest) apply(d *Document) error {
	sheet, rng, err := sheetForRange(d, r.rng)
	if err != nil {
		return err
	}
	_, err = sheet.Merge(rng)
	return err
}

type unmergeRequest struct {
	rng xlref.CellRange
}

func (r *unmergeRequest) String() string { return "unmerge " + r.rng.String() }

func (r *unmergeRequest) validate(d *Document) error {
	_, _, err := sheetForRange(d, r.rng)
	return err
}

func (r *unmergeRequest) apply(d *Document) error {
	sheet, rng, err := sheetForRange(d, r.rng)
	if err != nil {
		return err
	}
	_, err = sheet.Unmerge(rng)
	return err
}
