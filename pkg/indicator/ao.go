package indicator

import (
	"fmt"

	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/types"
)

// AwesomeOscillator is the difference between a short and a long SMA of the
// typical price. Both averages free-run from the first observation; the
// output is defined once the long window is full.
type AwesomeOscillator struct {
	shortPeriod int
	longPeriod  int
	short       *SMA
	long        *SMA
}

// NewAwesomeOscillator creates an awesome oscillator with the given short
// and long periods. The short period must be strictly shorter.
func NewAwesomeOscillator(shortPeriod, longPeriod int) (*AwesomeOscillator, error) {
	if err := validatePeriod(shortPeriod); err != nil {
		return nil, err
	}

	if err := validatePeriod(longPeriod); err != nil {
		return nil, err
	}

	if shortPeriod >= longPeriod {
		return nil, errors.Newf(errors.ErrCodePeriodOrder,
			"short period %d must be shorter than long period %d", shortPeriod, longPeriod)
	}

	short, _ := NewSMA(shortPeriod)
	long, _ := NewSMA(longPeriod)

	return &AwesomeOscillator{
		shortPeriod: shortPeriod,
		longPeriod:  longPeriod,
		short:       short,
		long:        long,
	}, nil
}

// Next consumes the observation's typical price.
func (a *AwesomeOscillator) Next(data types.MarketData) (optional.Option[types.Output], error) {
	price := data.TypicalPrice()

	short, _ := a.short.step(price)

	long, ok := a.long.step(price)
	if !ok {
		return notReady()
	}

	return ready(types.Scalar(short - long))
}

// Reset restores the freshly constructed state.
func (a *AwesomeOscillator) Reset() {
	a.short.Reset()
	a.long.Reset()
}

// Period returns the warm-up length.
func (a *AwesomeOscillator) Period() int {
	return a.longPeriod
}

// Shape returns the output shape.
func (a *AwesomeOscillator) Shape() types.OutputShape {
	return types.OutputShapeScalar
}

// Type returns the indicator's serialization tag.
func (a *AwesomeOscillator) Type() types.IndicatorType {
	return types.IndicatorTypeAwesomeOscillator
}

// Document renders the construction parameters.
func (a *AwesomeOscillator) Document() map[string]any {
	return map[string]any{
		"type":         string(types.IndicatorTypeAwesomeOscillator),
		"short_period": a.shortPeriod,
		"long_period":  a.longPeriod,
	}
}

func (a *AwesomeOscillator) String() string {
	return fmt.Sprintf("AO(%d, %d)", a.shortPeriod, a.longPeriod)
}
