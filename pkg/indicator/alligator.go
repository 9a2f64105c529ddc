package indicator

import (
	"fmt"

	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/types"
)

// alligatorLine is one smoothed moving average with a forward shift: values
// enter a bounded buffer and leave it shift observations later.
type alligatorLine struct {
	shift  int
	smma   emaCore
	buffer *queue
}

func newAlligatorLine(period, shift int) alligatorLine {
	return alligatorLine{
		shift:  shift,
		smma:   newEMACore(period, 1.0/float64(period)),
		buffer: newQueue(shift),
	}
}

// step consumes one raw value. ok is false until a shifted value emerges.
func (l *alligatorLine) step(v float64) (float64, bool) {
	smoothed, ok := l.smma.step(v)
	if !ok {
		return 0, false
	}

	return l.buffer.push(smoothed)
}

func (l *alligatorLine) period() int {
	return l.smma.period + l.shift
}

func (l *alligatorLine) reset() {
	l.smma.reset()
	l.buffer.reset()
}

// Alligator is Bill Williams' trend indicator: three smoothed moving
// averages of the median price (jaw, teeth, lips), each shifted forward in
// time before comparison. Output is the 3-tuple (jaw, teeth, lips).
type Alligator struct {
	jaw   alligatorLine
	teeth alligatorLine
	lips  alligatorLine
}

// NewAlligator creates an alligator with explicit periods and forward shifts
// per line. Periods must be at least 2 and shifts at least 1.
func NewAlligator(jawPeriod, jawShift, teethPeriod, teethShift, lipsPeriod, lipsShift int) (*Alligator, error) {
	for _, p := range []int{jawPeriod, teethPeriod, lipsPeriod} {
		if p < 2 {
			return nil, errors.Newf(errors.ErrCodeInvalidPeriod,
				"alligator line period must be at least 2, got %d", p)
		}
	}

	for _, s := range []int{jawShift, teethShift, lipsShift} {
		if s < 1 {
			return nil, errors.Newf(errors.ErrCodeInvalidShift,
				"alligator line shift must be at least 1, got %d", s)
		}
	}

	return &Alligator{
		jaw:   newAlligatorLine(jawPeriod, jawShift),
		teeth: newAlligatorLine(teethPeriod, teethShift),
		lips:  newAlligatorLine(lipsPeriod, lipsShift),
	}, nil
}

// NewStandardAlligator creates the standard alligator: jaw(13,8),
// teeth(8,5), lips(5,3).
func NewStandardAlligator() *Alligator {
	a, _ := NewAlligator(13, 8, 8, 5, 5, 3)

	return a
}

// Next consumes the observation's median price.
func (a *Alligator) Next(data types.MarketData) (optional.Option[types.Output], error) {
	price := data.MedianPrice()

	jaw, jawOK := a.jaw.step(price)
	teeth, teethOK := a.teeth.step(price)
	lips, lipsOK := a.lips.step(price)

	// The slowest line gates the whole tuple; faster buffers have been
	// cycling for a while by then.
	if !jawOK || !teethOK || !lipsOK {
		return notReady()
	}

	return ready(types.Tuple(jaw, teeth, lips))
}

// Reset restores the freshly constructed state.
func (a *Alligator) Reset() {
	a.jaw.reset()
	a.teeth.reset()
	a.lips.reset()
}

// Period returns the warm-up length: the max of period+shift across lines.
func (a *Alligator) Period() int {
	period := a.jaw.period()
	if p := a.teeth.period(); p > period {
		period = p
	}

	if p := a.lips.period(); p > period {
		period = p
	}

	return period
}

// Shape returns the output shape.
func (a *Alligator) Shape() types.OutputShape {
	return types.OutputShape(3)
}

// Type returns the indicator's serialization tag.
func (a *Alligator) Type() types.IndicatorType {
	return types.IndicatorTypeAlligator
}

// Document renders the construction parameters.
func (a *Alligator) Document() map[string]any {
	return map[string]any{
		"type":         string(types.IndicatorTypeAlligator),
		"jaw_period":   a.jaw.smma.period,
		"jaw_shift":    a.jaw.shift,
		"teeth_period": a.teeth.smma.period,
		"teeth_shift":  a.teeth.shift,
		"lips_period":  a.lips.smma.period,
		"lips_shift":   a.lips.shift,
	}
}

func (a *Alligator) String() string {
	return fmt.Sprintf("Alligator(%d/%d, %d/%d, %d/%d)",
		a.jaw.smma.period, a.jaw.shift,
		a.teeth.smma.period, a.teeth.shift,
		a.lips.smma.period, a.lips.shift)
}
