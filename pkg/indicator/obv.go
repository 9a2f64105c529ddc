package indicator

import (
	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/types"
)

// OnBalanceVolume keeps a running volume sum that rises with up-closes and
// falls with down-closes; an unchanged close contributes nothing. The first
// candle initializes the sum with its own volume, so the indicator is ready
// from the very first observation.
type OnBalanceVolume struct {
	prevClose float64
	total     float64
	started   bool
}

// NewOnBalanceVolume creates an on-balance volume indicator.
func NewOnBalanceVolume() *OnBalanceVolume {
	return &OnBalanceVolume{}
}

// Next consumes one observation. Volume is required, so a bare price is
// rejected.
func (o *OnBalanceVolume) Next(data types.MarketData) (optional.Option[types.Output], error) {
	if !data.IsCandle() {
		return optional.None[types.Output](), errors.New(errors.ErrCodeMissingCandleContext,
			"on-balance volume requires candle volume")
	}

	close, volume := data.Close(), data.Volume()

	if !o.started {
		o.total = volume
		o.prevClose = close
		o.started = true

		return ready(types.Scalar(o.total))
	}

	switch {
	case close > o.prevClose:
		o.total += volume
	case close < o.prevClose:
		o.total -= volume
	}

	o.prevClose = close

	return ready(types.Scalar(o.total))
}

// Reset restores the freshly constructed state.
func (o *OnBalanceVolume) Reset() {
	o.prevClose = 0
	o.total = 0
	o.started = false
}

// Period returns the warm-up length.
func (o *OnBalanceVolume) Period() int {
	return 1
}

// Shape returns the output shape.
func (o *OnBalanceVolume) Shape() types.OutputShape {
	return types.OutputShapeScalar
}

// Type returns the indicator's serialization tag.
func (o *OnBalanceVolume) Type() types.IndicatorType {
	return types.IndicatorTypeOnBalanceVolume
}

// Document renders the construction parameters.
func (o *OnBalanceVolume) Document() map[string]any {
	return map[string]any{"type": string(types.IndicatorTypeOnBalanceVolume)}
}

func (o *OnBalanceVolume) String() string {
	return "OBV()"
}
