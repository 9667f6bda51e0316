package cp

import (
	"github.com/pkg/errors"
)

// Offset returns a view of x + o.
func Offset(x IntVar, o int) IntVar {
	if o == 0 {
		return x
	}
	return &offsetView{x: x, o: o}
}

// Minus returns a view of -x.
func Minus(x IntVar) IntVar {
	if m, ok := x.(*minusView); ok {
		return m.x
	}
	return &minusView{x: x}
}

// Mul returns a view of a * x. Negative coefficients compose Minus.
func Mul(x IntVar, a int) (IntVar, error) {
	switch {
	case a == 0:
		return NewConstant(x.Solver(), 0), nil
	case a == 1:
		return x, nil
	case a < 0:
		v, err := Mul(x, -a)
		if err != nil {
			return nil, err
		}
		return Minus(v), nil
	}
	if h := x.Solver().Horizon(); x.Max() > h/a || x.Min() < -h/a {
		return nil, errors.Wrapf(ErrInvalidModel, "%d * %v overflows horizon %d", a, x, h)
	}
	return &mulView{x: x, a: a}, nil
}

type offsetView struct {
	x IntVar
	o int
}

var _ IntVar = &offsetView{}

func (v *offsetView) Solver() *Solver     { return v.x.Solver() }
func (v *offsetView) Min() int            { return v.x.Min() + v.o }
func (v *offsetView) Max() int            { return v.x.Max() + v.o }
func (v *offsetView) Size() int           { return v.x.Size() }
func (v *offsetView) Contains(w int) bool { return v.x.Contains(w - v.o) }
func (v *offsetView) IsFixed() bool       { return v.x.IsFixed() }

func (v *offsetView) FillArray(dest []int) int {
	n := v.x.FillArray(dest)
	for i := 0; i < n; i++ {
		dest[i] += v.o
	}
	return n
}

func (v *offsetView) FillDeltaArray(oldMin, oldMax, oldSize int, dest []int) int {
	n := v.x.FillDeltaArray(oldMin-v.o, oldMax-v.o, oldSize, dest)
	for i := 0; i < n; i++ {
		dest[i] += v.o
	}
	return n
}

func (v *offsetView) Remove(w int) error      { return v.x.Remove(w - v.o) }
func (v *offsetView) Fix(w int) error         { return v.x.Fix(w - v.o) }
func (v *offsetView) RemoveBelow(w int) error { return v.x.RemoveBelow(w - v.o) }
func (v *offsetView) RemoveAbove(w int) error { return v.x.RemoveAbove(w - v.o) }

func (v *offsetView) PropagateOnDomainChange(c Constraint) { v.x.PropagateOnDomainChange(c) }
func (v *offsetView) PropagateOnBoundChange(c Constraint)  { v.x.PropagateOnBoundChange(c) }
func (v *offsetView) PropagateOnFix(c Constraint)          { v.x.PropagateOnFix(c) }
func (v *offsetView) WhenDomainChange(f func() error)      { v.x.WhenDomainChange(f) }
func (v *offsetView) WhenBoundChange(f func() error)       { v.x.WhenBoundChange(f) }
func (v *offsetView) WhenFixed(f func() error)             { v.x.WhenFixed(f) }
func (v *offsetView) String() string                       { return formatDomain(v) }

type minusView struct {
	x IntVar
}

var _ IntVar = &minusView{}

func (v *minusView) Solver() *Solver     { return v.x.Solver() }
func (v *minusView) Min() int            { return -v.x.Max() }
func (v *minusView) Max() int            { return -v.x.Min() }
func (v *minusView) Size() int           { return v.x.Size() }
func (v *minusView) Contains(w int) bool { return v.x.Contains(-w) }
func (v *minusView) IsFixed() bool       { return v.x.IsFixed() }

func (v *minusView) FillArray(dest []int) int {
	n := v.x.FillArray(dest)
	for i := 0; i < n; i++ {
		dest[i] = -dest[i]
	}
	return n
}

func (v *minusView) FillDeltaArray(oldMin, oldMax, oldSize int, dest []int) int {
	n := v.x.FillDeltaArray(-oldMax, -oldMin, oldSize, dest)
	for i := 0; i < n; i++ {
		dest[i] = -dest[i]
	}
	return n
}

func (v *minusView) Remove(w int) error      { return v.x.Remove(-w) }
func (v *minusView) Fix(w int) error         { return v.x.Fix(-w) }
func (v *minusView) RemoveBelow(w int) error { return v.x.RemoveAbove(-w) }
func (v *minusView) RemoveAbove(w int) error { return v.x.RemoveBelow(-w) }

func (v *minusView) PropagateOnDomainChange(c Constraint) { v.x.PropagateOnDomainChange(c) }
func (v *minusView) PropagateOnBoundChange(c Constraint)  { v.x.PropagateOnBoundChange(c) }
func (v *minusView) PropagateOnFix(c Constraint)          { v.x.PropagateOnFix(c) }
func (v *minusView) WhenDomainChange(f func() error)      { v.x.WhenDomainChange(f) }
func (v *minusView) WhenBoundChange(f func() error)       { v.x.WhenBoundChange(f) }
func (v *minusView) WhenFixed(f func() error)             { v.x.WhenFixed(f) }
func (v *minusView) String() string                       { return formatDomain(v) }

// mulView is a * x for a > 1.
type mulView struct {
	x IntVar
	a int
}

var _ IntVar = &mulView{}

func (v *mulView) Solver() *Solver { return v.x.Solver() }
func (v *mulView) Min() int        { return v.a * v.x.Min() }
func (v *mulView) Max() int        { return v.a * v.x.Max() }
func (v *mulView) Size() int       { return v.x.Size() }
func (v *mulView) IsFixed() bool   { return v.x.IsFixed() }

func (v *mulView) Contains(w int) bool {
	return w%v.a == 0 && v.x.Contains(w/v.a)
}

func (v *mulView) FillArray(dest []int) int {
	n := v.x.FillArray(dest)
	for i := 0; i < n; i++ {
		dest[i] *= v.a
	}
	return n
}

func (v *mulView) FillDeltaArray(oldMin, oldMax, oldSize int, dest []int) int {
	n := v.x.FillDeltaArray(oldMin/v.a, oldMax/v.a, oldSize, dest)
	for i := 0; i < n; i++ {
		dest[i] *= v.a
	}
	return n
}

func (v *mulView) Remove(w int) error {
	if w%v.a != 0 {
		return nil
	}
	return v.x.Remove(w / v.a)
}

func (v *mulView) Fix(w int) error {
	if w%v.a != 0 {
		return ErrInconsistency
	}
	return v.x.Fix(w / v.a)
}

func (v *mulView) RemoveBelow(w int) error { return v.x.RemoveBelow(ceilDiv(w, v.a)) }
func (v *mulView) RemoveAbove(w int) error { return v.x.RemoveAbove(floorDiv(w, v.a)) }

func (v *mulView) PropagateOnDomainChange(c Constraint) { v.x.PropagateOnDomainChange(c) }
func (v *mulView) PropagateOnBoundChange(c Constraint)  { v.x.PropagateOnBoundChange(c) }
func (v *mulView) PropagateOnFix(c Constraint)          { v.x.PropagateOnFix(c) }
func (v *mulView) WhenDomainChange(f func() error)      { v.x.WhenDomainChange(f) }
func (v *mulView) WhenBoundChange(f func() error)       { v.x.WhenBoundChange(f) }
func (v *mulView) WhenFixed(f func() error)             { v.x.WhenFixed(f) }
func (v *mulView) String() string                       { return formatDomain(v) }

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}
