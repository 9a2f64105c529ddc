package indicator

import (
	"fmt"

	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/argo-ta/pkg/types"
)

// WilliamsR measures where the close sits relative to the high-low range of
// the last period observations, scaled into [-100, 0]. A flat window maps to
// the 0 boundary.
type WilliamsR struct {
	period int
	highs  *queue
	lows   *queue
}

// NewWilliamsR creates a Williams %R over the given period.
func NewWilliamsR(period int) (*WilliamsR, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	return &WilliamsR{
		period: period,
		highs:  newQueue(period),
		lows:   newQueue(period),
	}, nil
}

// Next consumes one observation.
func (w *WilliamsR) Next(data types.MarketData) (optional.Option[types.Output], error) {
	w.highs.push(data.High())
	w.lows.push(data.Low())

	if !w.highs.full() {
		return notReady()
	}

	highest := w.highs.values()[0]
	for _, v := range w.highs.values()[1:] {
		if v > highest {
			highest = v
		}
	}

	lowest := w.lows.values()[0]
	for _, v := range w.lows.values()[1:] {
		if v < lowest {
			lowest = v
		}
	}

	if highest == lowest {
		return ready(types.Scalar(0))
	}

	r := -100 * (highest - data.Close()) / (highest - lowest)

	return ready(types.Scalar(r))
}

// Reset restores the freshly constructed state.
func (w *WilliamsR) Reset() {
	w.highs.reset()
	w.lows.reset()
}

// Period returns the warm-up length.
func (w *WilliamsR) Period() int {
	return w.period
}

// Shape returns the output shape.
func (w *WilliamsR) Shape() types.OutputShape {
	return types.OutputShapeScalar
}

// Type returns the indicator's serialization tag.
func (w *WilliamsR) Type() types.IndicatorType {
	return types.IndicatorTypeWilliamsR
}

// Document renders the construction parameters.
func (w *WilliamsR) Document() map[string]any {
	return map[string]any{
		"type":   string(types.IndicatorTypeWilliamsR),
		"period": w.period,
	}
}

func (w *WilliamsR) String() string {
	return fmt.Sprintf("WilliamsR(%d)", w.period)
}
