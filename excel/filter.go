package excel

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// filterCache maps an expression string to its compiled *vm.Program.
var filterCache sync.Map

func compileFilter(expression string) (*vm.Program, error) {
	if cached, ok := filterCache.Load(expression); ok {
		return cached.(*vm.Program), nil
	}
	program, err := expr.Compile(expression, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", expression, err)
	}
	filterCache.Store(expression, program)
	return program, nil
}

// matches evaluates a compiled filter against one record environment.
// A nil result counts as false.
func matches(program *vm.Program, env map[string]any) (bool, error) {
	result, err := expr.Run(program, env)
	if err != nil {
		return false, err
	}
	if result == nil {
		return false, nil
	}
	b, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("filter evaluated to %T, expected bool", result)
	}
	return b, nil
}

// typedValue turns a cell string into int64 or float64 when it parses as a
// number, so filters can compare numerically.
func typedValue(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
