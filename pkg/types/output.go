package types

import (
	"fmt"
	"strings"

	"github.com/rxtech-lab/argo-ta/pkg/errors"
)

// OutputShape describes how many parallel values an indicator emits per
// observation: 1 for a scalar, n for an n-tuple.
type OutputShape int

// OutputShapeScalar is the shape of every single-valued indicator.
const OutputShapeScalar OutputShape = 1

func (s OutputShape) String() string {
	if s == OutputShapeScalar {
		return "scalar"
	}

	return fmt.Sprintf("tuple(%d)", int(s))
}

// OutputKind tags the variant held by an Output value.
type OutputKind string

const (
	OutputKindScalar       OutputKind = "scalar"
	OutputKindTuple        OutputKind = "tuple"
	OutputKindOpen         OutputKind = "open"
	OutputKindHigh         OutputKind = "high"
	OutputKindLow          OutputKind = "low"
	OutputKindClose        OutputKind = "close"
	OutputKindTypicalPrice OutputKind = "typical_price"
	OutputKindStatic       OutputKind = "static"
	OutputKindComposite    OutputKind = "composite"
)

// Output is the common currency between indicators and comparisons: a single
// scalar, an ordered fixed-length tuple of scalars, a reference into the
// current candle (resolved at evaluation time, never stored), a static
// boolean placeholder, or a composite selecting individual slots of a
// multi-valued output.
//
// Composite masking policy: a Static part is a "don't care" placeholder.
// When a composite participates in a comparison, masked slots are skipped
// entirely; the comparison holds iff every non-placeholder slot holds.
type Output struct {
	kind   OutputKind
	scalar float64
	tuple  []float64
	static bool
	parts  []Output
}

// Scalar builds a single-valued output.
func Scalar(v float64) Output {
	return Output{kind: OutputKindScalar, scalar: v}
}

// Tuple builds an ordered fixed-length output.
func Tuple(vs ...float64) Output {
	return Output{kind: OutputKindTuple, tuple: vs}
}

// Open references the current candle's opening price.
func Open() Output { return Output{kind: OutputKindOpen} }

// High references the current candle's highest price.
func High() Output { return Output{kind: OutputKindHigh} }

// Low references the current candle's lowest price.
func Low() Output { return Output{kind: OutputKindLow} }

// ClosePrice references the current candle's closing price.
func ClosePrice() Output { return Output{kind: OutputKindClose} }

// TypicalPrice references the current candle's typical price.
func TypicalPrice() Output { return Output{kind: OutputKindTypicalPrice} }

// Static builds a boolean constant, used as a placeholder slot in composites.
func Static(b bool) Output {
	return Output{kind: OutputKindStatic, static: b}
}

// Composite builds a multi-slot output whose parts are scalars or static
// placeholders, shaped to match a multi-valued indicator output.
func Composite(parts ...Output) Output {
	return Output{kind: OutputKindComposite, parts: parts}
}

// Kind returns the variant tag of the output.
func (o Output) Kind() OutputKind {
	return o.kind
}

// Shape returns the number of parallel values the output carries.
func (o Output) Shape() OutputShape {
	switch o.kind {
	case OutputKindTuple:
		return OutputShape(len(o.tuple))
	case OutputKindComposite:
		return OutputShape(len(o.parts))
	default:
		return OutputShapeScalar
	}
}

// AsScalar returns the scalar value if the output is a scalar.
func (o Output) AsScalar() (float64, bool) {
	if o.kind == OutputKindScalar {
		return o.scalar, true
	}

	return 0, false
}

// AsTuple returns the tuple values if the output is a tuple.
func (o Output) AsTuple() ([]float64, bool) {
	if o.kind == OutputKindTuple {
		return o.tuple, true
	}

	return nil, false
}

// AsStatic returns the boolean constant if the output is static.
func (o Output) AsStatic() (bool, bool) {
	if o.kind == OutputKindStatic {
		return o.static, true
	}

	return false, false
}

// Parts returns the composite slots if the output is a composite.
func (o Output) Parts() ([]Output, bool) {
	if o.kind == OutputKindComposite {
		return o.parts, true
	}

	return nil, false
}

// Equal reports structural equality, with exact float comparison.
func (o Output) Equal(other Output) bool {
	if o.kind != other.kind {
		return false
	}

	switch o.kind {
	case OutputKindScalar:
		return o.scalar == other.scalar
	case OutputKindStatic:
		return o.static == other.static
	case OutputKindTuple:
		if len(o.tuple) != len(other.tuple) {
			return false
		}

		for i := range o.tuple {
			if o.tuple[i] != other.tuple[i] {
				return false
			}
		}

		return true
	case OutputKindComposite:
		if len(o.parts) != len(other.parts) {
			return false
		}

		for i := range o.parts {
			if !o.parts[i].Equal(other.parts[i]) {
				return false
			}
		}

		return true
	default:
		return true
	}
}

func (o Output) String() string {
	switch o.kind {
	case OutputKindScalar:
		return fmt.Sprintf("%v", o.scalar)
	case OutputKindTuple:
		elems := make([]string, len(o.tuple))
		for i, v := range o.tuple {
			elems[i] = fmt.Sprintf("%v", v)
		}

		return "[" + strings.Join(elems, ", ") + "]"
	case OutputKindStatic:
		return fmt.Sprintf("static(%t)", o.static)
	case OutputKindComposite:
		elems := make([]string, len(o.parts))
		for i, p := range o.parts {
			elems[i] = p.String()
		}

		return "composite(" + strings.Join(elems, ", ") + ")"
	default:
		return string(o.kind)
	}
}

// resolve replaces a candle-price reference with the concrete scalar taken
// from the current observation. Every other variant passes through unchanged.
func (o Output) resolve(data *MarketData) (Output, error) {
	switch o.kind {
	case OutputKindOpen, OutputKindHigh, OutputKindLow, OutputKindClose, OutputKindTypicalPrice:
		if data == nil {
			return Output{}, errors.Newf(errors.ErrCodeMissingCandleContext,
				"%s reference cannot resolve without a current observation", o.kind)
		}

		switch o.kind {
		case OutputKindOpen:
			return Scalar(data.Open()), nil
		case OutputKindHigh:
			return Scalar(data.High()), nil
		case OutputKindLow:
			return Scalar(data.Low()), nil
		case OutputKindClose:
			return Scalar(data.Close()), nil
		default:
			return Scalar(data.TypicalPrice()), nil
		}
	default:
		return o, nil
	}
}

// Compare resolves both operands against the current observation and applies
// cmp slot-wise. Operand shapes must be compatible: scalar against scalar, or
// an n-tuple against an n-tuple or n-slot composite. Static placeholders pass
// trivially; a shape mismatch is an error, never a silent false.
func (o Output) Compare(other Output, cmp func(a, b float64) bool, data *MarketData) (bool, error) {
	lhs, err := o.resolve(data)
	if err != nil {
		return false, err
	}

	rhs, err := other.resolve(data)
	if err != nil {
		return false, err
	}

	switch {
	case lhs.kind == OutputKindStatic || rhs.kind == OutputKindStatic:
		return true, nil
	case lhs.kind == OutputKindScalar && rhs.kind == OutputKindScalar:
		return cmp(lhs.scalar, rhs.scalar), nil
	case lhs.kind == OutputKindTuple && rhs.kind == OutputKindTuple:
		if len(lhs.tuple) != len(rhs.tuple) {
			return false, shapeMismatch(lhs, rhs)
		}

		for i := range lhs.tuple {
			if !cmp(lhs.tuple[i], rhs.tuple[i]) {
				return false, nil
			}
		}

		return true, nil
	case lhs.kind == OutputKindTuple && rhs.kind == OutputKindComposite:
		return compareTupleComposite(lhs.tuple, rhs.parts, cmp, false, data)
	case lhs.kind == OutputKindComposite && rhs.kind == OutputKindTuple:
		return compareTupleComposite(rhs.tuple, lhs.parts, cmp, true, data)
	case lhs.kind == OutputKindComposite && rhs.kind == OutputKindComposite:
		return compareComposites(lhs.parts, rhs.parts, cmp, data)
	default:
		return false, shapeMismatch(lhs, rhs)
	}
}

// compareTupleComposite applies cmp between tuple slots and the non-masked
// composite parts. swapped indicates the composite was the left operand.
func compareTupleComposite(tuple []float64, parts []Output, cmp func(a, b float64) bool, swapped bool, data *MarketData) (bool, error) {
	if len(tuple) != len(parts) {
		return false, errors.Newf(errors.ErrCodeShapeMismatch,
			"cannot compare tuple(%d) against composite(%d)", len(tuple), len(parts))
	}

	for i, part := range parts {
		resolved, err := part.resolve(data)
		if err != nil {
			return false, err
		}

		switch resolved.kind {
		case OutputKindStatic:
			continue
		case OutputKindScalar:
			a, b := tuple[i], resolved.scalar
			if swapped {
				a, b = b, a
			}

			if !cmp(a, b) {
				return false, nil
			}
		default:
			return false, errors.Newf(errors.ErrCodeNotComparable,
				"composite slot %d has non-scalar kind %s", i, resolved.kind)
		}
	}

	return true, nil
}

func compareComposites(lhs, rhs []Output, cmp func(a, b float64) bool, data *MarketData) (bool, error) {
	if len(lhs) != len(rhs) {
		return false, errors.Newf(errors.ErrCodeShapeMismatch,
			"cannot compare composite(%d) against composite(%d)", len(lhs), len(rhs))
	}

	for i := range lhs {
		a, err := lhs[i].resolve(data)
		if err != nil {
			return false, err
		}

		b, err := rhs[i].resolve(data)
		if err != nil {
			return false, err
		}

		if a.kind == OutputKindStatic || b.kind == OutputKindStatic {
			continue
		}

		if a.kind != OutputKindScalar || b.kind != OutputKindScalar {
			return false, errors.Newf(errors.ErrCodeNotComparable,
				"composite slot %d has non-scalar kinds %s, %s", i, a.kind, b.kind)
		}

		if !cmp(a.scalar, b.scalar) {
			return false, nil
		}
	}

	return true, nil
}

func shapeMismatch(lhs, rhs Output) error {
	return errors.Newf(errors.ErrCodeShapeMismatch,
		"cannot compare %s against %s", describeShape(lhs), describeShape(rhs))
}

func describeShape(o Output) string {
	switch o.kind {
	case OutputKindScalar:
		return "scalar"
	case OutputKindTuple:
		return fmt.Sprintf("tuple(%d)", len(o.tuple))
	case OutputKindComposite:
		return fmt.Sprintf("composite(%d)", len(o.parts))
	default:
		return string(o.kind)
	}
}
