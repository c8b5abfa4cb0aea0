// Package calc implements safe arithmetic evaluation for chat messages.
//
// A message like "can you calculate 25 * 4" is detected by trigger phrase,
// the expression is parsed into a small AST and evaluated by walking an
// explicit node whitelist: numbers, + - * /, ^ (power) and unary minus.
// Nothing else executes. Malformed or unsupported input comes back as a
// structured failure, never a panic.
package calc

import (
	"errors"
	"math"
	"strconv"
)

var ErrDivisionByZero = errors.New("division by zero")

// ErrUnsupported marks constructs the evaluator refuses to run. The current
// grammar cannot produce such a node, but the walker keeps its own check so
// a grammar change can never widen what executes.
var ErrUnsupported = errors.New("unsupported operation")

// ParseError reports malformed input together with the offending detail.
type ParseError struct {
	Detail string
}

func (e *ParseError) Error() string {
	return "invalid expression: " + e.Detail
}

// Result is the outcome of evaluating one expression. Err is nil on
// success, otherwise ErrDivisionByZero, ErrUnsupported or a *ParseError.
type Result struct {
	Value float64
	Err   error
}

func (r Result) OK() bool { return r.Err == nil }

// Evaluate parses and evaluates a single arithmetic expression.
func Evaluate(expr string) Result {
	n, err := parse(expr)
	if err != nil {
		return Result{Err: err}
	}
	v, err := eval(n)
	if err != nil {
		return Result{Err: err}
	}
	return Result{Value: v}
}

// eval walks the tree. The switch is an explicit whitelist: any node kind
// not listed here is rejected rather than evaluated.
func eval(n *node) (float64, error) {
	switch n.kind {
	case nodeNumber:
		return n.value, nil
	case nodeAdd:
		l, r, err := evalPair(n)
		if err != nil {
			return 0, err
		}
		return l + r, nil
	case nodeSub:
		l, r, err := evalPair(n)
		if err != nil {
			return 0, err
		}
		return l - r, nil
	case nodeMul:
		l, r, err := evalPair(n)
		if err != nil {
			return 0, err
		}
		return l * r, nil
	case nodeDiv:
		l, r, err := evalPair(n)
		if err != nil {
			return 0, err
		}
		if r == 0 {
			return 0, ErrDivisionByZero
		}
		return l / r, nil
	case nodePow:
		l, r, err := evalPair(n)
		if err != nil {
			return 0, err
		}
		// 0 raised to a negative power is a division by zero in disguise.
		if l == 0 && r < 0 {
			return 0, ErrDivisionByZero
		}
		return math.Pow(l, r), nil
	case nodeNeg:
		v, err := eval(n.left)
		if err != nil {
			return 0, err
		}
		return -v, nil
	default:
		return 0, ErrUnsupported
	}
}

func evalPair(n *node) (float64, float64, error) {
	l, err := eval(n.left)
	if err != nil {
		return 0, 0, err
	}
	r, err := eval(n.right)
	if err != nil {
		return 0, 0, err
	}
	return l, r, nil
}

// FormatValue renders a value the way a person would write it: integral
// results without a decimal point, everything else in shortest form.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
