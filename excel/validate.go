package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/efp"

	"github.com/javajack/xlref"
)

// Severity indicates the severity of a validation issue.
type Severity int

const (
	SeverityError   Severity = iota // References that cannot resolve
	SeverityWarning                 // Data that may be lost or misread
)

// Issue is a single problem found by Validate.
type Issue struct {
	Severity Severity
	Ref      xlref.CellRef
	Message  string
}

// String formats the issue as "[ERROR] Sheet1!A2: message" or "[WARN] ...".
func (i Issue) String() string {
	sev := "ERROR"
	if i.Severity == SeverityWarning {
		sev = "WARN"
	}
	return fmt.Sprintf("[%s] %s: %s", sev, i.Ref, i.Message)
}

// errorLiterals are the values Excel stores for failed computations.
var errorLiterals = map[string]bool{
	"#NULL!": true, "#DIV/0!": true, "#VALUE!": true, "#REF!": true,
	"#NAME?": true, "#NUM!": true, "#N/A": true,
}

// Validate scans the used area of every sheet. It reports formulas that
// reference deleted cells or missing sheets, and cells holding error values.
func (d *Document) Validate() ([]Issue, error) {
	var issues []Issue
	for _, s := range d.Sheets() {
		found, err := s.validate()
		if err != nil {
			return nil, err
		}
		issues = append(issues, found...)
	}
	return issues, nil
}

func (s *Sheet) validate() ([]Issue, error) {
	bounds, ok, err := s.Bounds()
	if err != nil || !ok {
		return nil, err
	}
	var issues []Issue
	for _, ref := range bounds.Cells(0, 0) {
		c := s.CellByRef(ref)
		formula, err := c.Formula()
		if err != nil {
			return nil, err
		}
		if formula != "" {
			issues = append(issues, s.validateFormula(c.Ref(), formula)...)
		}

		value, err := c.Value()
		if err != nil {
			return nil, err
		}
		if errorLiterals[value] {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Ref:      c.Ref(),
				Message:  fmt.Sprintf("cell holds error value %s", value),
			})
		}
	}
	return issues, nil
}

// validateFormula tokenizes formula and checks every range operand.
// Operands that do not parse as references are taken to be defined names.
func (s *Sheet) validateFormula(at xlref.CellRef, formula string) []Issue {
	var issues []Issue
	ps := efp.ExcelParser()
	for _, tok := range ps.Parse(formula) {
		if tok.TType != efp.TokenTypeOperand {
			continue
		}
		switch {
		case tok.TSubType == efp.TokenSubTypeError && tok.TValue == "#REF!",
			tok.TSubType == efp.TokenSubTypeRange && strings.HasSuffix(tok.TValue, "#REF!"):
			issues = append(issues, Issue{
				Severity: SeverityError,
				Ref:      at,
				Message:  fmt.Sprintf("formula %q references a deleted cell", formula),
			})
		case tok.TSubType == efp.TokenSubTypeRange:
			rng, err := xlref.ParseCellRange(tok.TValue)
			if err != nil || rng.Sheet() == "" {
				continue
			}
			if s.doc.Sheet(rng.Sheet()) == nil {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Ref:      at,
					Message:  fmt.Sprintf("formula %q references missing sheet %q", formula, rng.Sheet()),
				})
			}
		}
	}
	return issues
}
