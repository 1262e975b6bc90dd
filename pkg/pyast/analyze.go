package pyast

import (
	"errors"
	"fmt"
)

// ErrAnalysis is returned when a subtree does not have the shape an
// analyzer requires.
var ErrAnalysis = errors.New("unsupported subtree")

// RangeInfo describes the arguments of a range(...) call.
// The *Int fields are integer snapshots of the corresponding subtree when
// it is a literal int constant.
type RangeInfo struct {
	Start Expr
	Stop  Expr
	Step  Expr

	StartInt *int64
	StopInt  *int64
	StepInt  *int64
}

// AnalyzeRange extracts RangeInfo from a range(...) call with 1 to 3
// positional arguments.
func AnalyzeRange(call *Call) (*RangeInfo, error) {
	name, ok := FunctionName(call)
	if !ok || name != "range" || len(call.Args) < 1 || len(call.Args) > 3 {
		return nil, fmt.Errorf("%w for range analysis", ErrAnalysis)
	}

	var start, stop, step Expr

	switch len(call.Args) {
	case 1:
		start, stop, step = MakeInt(0), call.Args[0], MakeInt(1)
	case 2:
		start, stop, step = call.Args[0], call.Args[1], MakeInt(1)
	default:
		start, stop, step = call.Args[0], call.Args[1], call.Args[2]
	}

	return &RangeInfo{
		Start:    start,
		Stop:     stop,
		Step:     step,
		StartInt: intOrNil(start),
		StopInt:  intOrNil(stop),
		StepInt:  intOrNil(step),
	}, nil
}

func intOrNil(expr Expr) *int64 {
	value, ok := IntValue(expr)
	if !ok {
		return nil
	}

	return &value
}

// ReduceStopParameter adjusts the exclusive stop expression of a range to
// the inclusive upper bound of the corresponding summation:
// n + 1 becomes n, n + 2 becomes n + 1, n - 1 becomes n - 2, and anything
// else becomes stop - 1.
func ReduceStopParameter(stop Expr) Expr {
	minusOne := func() Expr {
		return &BinOp{Left: stop, Op: OpSub, Right: MakeInt(1)}
	}

	bin, ok := stop.(*BinOp)
	if !ok || (bin.Op != OpAdd && bin.Op != OpSub) {
		return minusOne()
	}

	rhs, ok := IntValue(bin.Right)
	if !ok {
		return minusOne()
	}

	var shift int64 = 1
	if bin.Op == OpSub {
		shift = -1
	}

	if rhs == shift {
		return bin.Left
	}

	return &BinOp{Left: bin.Left, Op: bin.Op, Right: MakeInt(rhs - shift)}
}

// AnalyzeAttribute flattens a Name or nested Attribute into its dotted
// name parts, e.g. numpy.random becomes ["numpy", "random"].
func AnalyzeAttribute(expr Expr) ([]string, error) {
	switch e := expr.(type) {
	case *Name:
		return []string{e.Ident}, nil
	case *Attribute:
		prefix, err := AnalyzeAttribute(e.Value)
		if err != nil {
			return nil, err
		}

		return append(prefix, e.Attr), nil
	default:
		return nil, fmt.Errorf("%w for attribute analysis: %s", ErrAnalysis, expr.Kind())
	}
}
