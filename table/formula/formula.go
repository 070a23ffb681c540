package formula

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
)

// ErrFormula is wrapped by every [Error].
var ErrFormula = errors.New("formula: evaluation error")

// Error reports a formula that cannot be parsed or bound to the available
// columns.
type Error struct {
	Formula string
	Msg     string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("formula %q: %s: %v", e.Formula, e.Msg, e.Err)
	}
	return fmt.Sprintf("formula %q: %s", e.Formula, e.Msg)
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrFormula, e.Err}
	}
	return []error{ErrFormula}
}

// Formula is a parsed expression.
type Formula struct {
	src  string
	root *expression
	refs []int
}

// Parse parses src. Surrounding whitespace is ignored.
func Parse(src string) (*Formula, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, &Error{Formula: src, Msg: "empty expression"}
	}
	root, err := formulaParser.ParseString("", src)
	if err != nil {
		msg := "syntax error"
		var perr participle.Error
		if errors.As(err, &perr) {
			msg = fmt.Sprintf("syntax error at column %d", perr.Position().Column)
		}
		return nil, &Error{Formula: src, Msg: msg, Err: err}
	}
	f := &Formula{src: src, root: root}
	if err := f.collect(root); err != nil {
		return nil, err
	}
	slices.Sort(f.refs)
	f.refs = slices.Compact(f.refs)
	return f, nil
}

// MustParse is like Parse but panics on error.
func MustParse(src string) *Formula {
	f, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return f
}

// String returns the trimmed source text.
func (f *Formula) String() string { return f.src }

// References returns the distinct 1-based column references, ascending.
func (f *Formula) References() []int { return slices.Clone(f.refs) }

// Check verifies every reference addresses one of columns columns.
func (f *Formula) Check(columns int) error {
	for _, r := range f.refs {
		if r > columns {
			return &Error{Formula: f.src, Msg: fmt.Sprintf("column %d does not exist, %d available", r, columns)}
		}
	}
	return nil
}

// Eval evaluates the formula with values[i] bound to column i+1. A reference
// beyond len(values) evaluates to NaN.
func (f *Formula) Eval(values []float64) float64 {
	return f.root.eval(values)
}

func (f *Formula) collect(e *expression) error {
	var walkUnary func(u *unary) error
	walkPrimary := func(p *primary) error {
		if p.Group != nil {
			return f.collect(p.Group)
		}
		if !isReference(p.Number) {
			return nil
		}
		n, err := strconv.Atoi(p.Number)
		if err != nil {
			return &Error{Formula: f.src, Msg: fmt.Sprintf("bad column reference %s", p.Number), Err: err}
		}
		if n < 1 {
			return &Error{Formula: f.src, Msg: "column references start at 1"}
		}
		f.refs = append(f.refs, n)
		return nil
	}
	walkUnary = func(u *unary) error {
		if err := walkPrimary(u.Power.Base); err != nil {
			return err
		}
		if u.Power.Exponent != nil {
			return walkUnary(u.Power.Exponent)
		}
		return nil
	}
	walkTerm := func(t *term) error {
		if err := walkUnary(t.Left); err != nil {
			return err
		}
		for _, r := range t.Right {
			if err := walkUnary(r.Unary); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walkTerm(e.Left); err != nil {
		return err
	}
	for _, r := range e.Right {
		if err := walkTerm(r.Term); err != nil {
			return err
		}
	}
	return nil
}

func isReference(lit string) bool {
	return !strings.ContainsAny(lit, ".eE")
}

func (e *expression) eval(vals []float64) float64 {
	v := e.Left.eval(vals)
	for _, r := range e.Right {
		if r.Op == "+" {
			v += r.Term.eval(vals)
		} else {
			v -= r.Term.eval(vals)
		}
	}
	return v
}

func (t *term) eval(vals []float64) float64 {
	v := t.Left.eval(vals)
	for _, r := range t.Right {
		if r.Op == "*" {
			v *= r.Unary.eval(vals)
		} else {
			v /= r.Unary.eval(vals)
		}
	}
	return v
}

func (u *unary) eval(vals []float64) float64 {
	v := u.Power.eval(vals)
	for _, s := range u.Signs {
		if s == "-" {
			v = -v
		}
	}
	return v
}

func (p *power) eval(vals []float64) float64 {
	base := p.Base.eval(vals)
	if p.Exponent == nil {
		return base
	}
	return math.Pow(base, p.Exponent.eval(vals))
}

func (p *primary) eval(vals []float64) float64 {
	if p.Group != nil {
		return p.Group.eval(vals)
	}
	if !isReference(p.Number) {
		v, err := strconv.ParseFloat(p.Number, 64)
		if err != nil {
			return math.NaN()
		}
		return v
	}
	n, err := strconv.Atoi(p.Number)
	if err != nil || n < 1 || n > len(vals) {
		return math.NaN()
	}
	return vals[n-1]
}
