package excel

import (
	"fmt"

	"github.com/javajack/xlref"
	"go.uber.org/zap"
)

// MergedRegions returns every merged region on the sheet.
func (s *Sheet) MergedRegions() ([]xlref.CellRange, error) {
	merges, err := s.doc.file.GetMergeCells(s.name)
	if err != nil {
		return nil, fmt.Errorf("read merged cells of sheet %q: %w", s.name, err)
	}
	regions := make([]xlref.CellRange, 0, len(merges))
	for _, m := range merges {
		first, err := xlref.ParseCellRef(m.GetStartAxis())
		if err != nil {
			return nil, err
		}
		last, err := xlref.ParseCellRef(m.GetEndAxis())
		if err != nil {
			return nil, err
		}
		regions = append(regions, xlref.NewSheetCellRange(s.name, first.Row, first.Col, last.Row, last.Col))
	}
	return regions, nil
}

// MergedRegionAt returns the merged region containing the 0-based position.
func (s *Sheet) MergedRegionAt(row, col int) (xlref.CellRange, bool, error) {
	regions, err := s.MergedRegions()
	if err != nil {
		return xlref.CellRange{}, false, err
	}
	for _, r := range regions {
		if r.IsInRange(row, col) {
			return r, true, nil
		}
	}
	return xlref.CellRange{}, false, nil
}

// bounded qualifies rng with this sheet and rejects whole-row and whole-column ranges.
func (s *Sheet) bounded(rng xlref.CellRange) (xlref.CellRange, error) {
	rng, err := s.local(rng)
	if err != nil {
		return xlref.CellRange{}, err
	}
	if rng.First.Row == xlref.NoIndex || rng.First.Col == xlref.NoIndex {
		return xlref.CellRange{}, fmt.Errorf("%w: %s", ErrUnboundedRange, rng)
	}
	return rng, nil
}

// Merge merges rng into one region and returns its top-left cell. Existing
// regions that intersect rng are removed first, not resized. A single-cell
// range only clears the intersecting regions.
func (s *Sheet) Merge(rng xlref.CellRange) (*Cell, error) {
	rng, err := s.bounded(rng)
	if err != nil {
		return nil, err
	}
	removed, err := s.unmergeIntersecting(rng)
	if err != nil {
		return nil, err
	}

	topLeft, bottomRight := rng.TopLeft(), rng.BottomRight()
	if !rng.IsSingleCell() {
		if err := s.doc.file.MergeCell(s.name, topLeft.CellName(), bottomRight.CellName()); err != nil {
			return nil, fmt.Errorf("merge cells %s: %w", rng, err)
		}
	}
	s.doc.log.Debug("merged cells",
		zap.String("sheet", s.name),
		zap.Stringer("range", rng),
		zap.Int("replaced", removed))
	return s.Cell(topLeft.Row, topLeft.Col), nil
}

// MergeString is Merge for a range string such as "A1:C1".
func (s *Sheet) MergeString(rangeStr string) (*Cell, error) {
	rng, err := xlref.ParseCellRange(rangeStr)
	if err != nil {
		return nil, err
	}
	return s.Merge(rng)
}

// Unmerge removes every merged region that intersects rng and returns how
// many were removed.
func (s *Sheet) Unmerge(rng xlref.CellRange) (int, error) {
	rng, err := s.bounded(rng)
	if err != nil {
		return 0, err
	}
	removed, err := s.unmergeIntersecting(rng)
	if err != nil {
		return 0, err
	}
	s.doc.log.Debug("unmerged cells",
		zap.String("sheet", s.name),
		zap.Stringer("range", rng),
		zap.Int("removed", removed))
	return removed, nil
}

func (s *Sheet) unmergeIntersecting(rng xlref.CellRange) (int, error) {
	regions, err := s.MergedRegions()
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, r := range regions {
		if !r.Intersects(rng) {
			continue
		}
		if err := s.doc.file.UnmergeCell(s.name, r.TopLeft().CellName(), r.BottomRight().CellName()); err != nil {
			return removed, fmt.Errorf("unmerge cells %s: %w", r, err)
		}
		removed++
	}
	return removed, nil
}
