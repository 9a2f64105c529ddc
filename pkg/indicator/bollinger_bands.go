package indicator

import (
	"fmt"

	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/types"
)

// BollingerBands places bands around a simple moving average at a multiple
// of the rolling population standard deviation. Output is the 3-tuple
// (average, upper, lower).
type BollingerBands struct {
	multiplier float64
	sd         sdCore
}

// NewBollingerBands creates Bollinger bands over the given period and band
// multiplier.
func NewBollingerBands(period int, multiplier float64) (*BollingerBands, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	if multiplier <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidMultiplier,
			"band multiplier must be positive, got %v", multiplier)
	}

	return &BollingerBands{multiplier: multiplier, sd: newSDCore(period)}, nil
}

// Next consumes the observation's closing price.
func (b *BollingerBands) Next(data types.MarketData) (optional.Option[types.Output], error) {
	sd, ok := b.sd.step(data.Close())
	if !ok {
		return notReady()
	}

	mean := b.sd.mean()
	offset := sd * b.multiplier

	return ready(types.Tuple(mean, mean+offset, mean-offset))
}

// Reset restores the freshly constructed state.
func (b *BollingerBands) Reset() {
	b.sd.reset()
}

// Period returns the warm-up length.
func (b *BollingerBands) Period() int {
	return b.sd.period
}

// Shape returns the output shape.
func (b *BollingerBands) Shape() types.OutputShape {
	return types.OutputShape(3)
}

// Type returns the indicator's serialization tag.
func (b *BollingerBands) Type() types.IndicatorType {
	return types.IndicatorTypeBollingerBands
}

// Document renders the construction parameters.
func (b *BollingerBands) Document() map[string]any {
	return map[string]any{
		"type":       string(types.IndicatorTypeBollingerBands),
		"period":     b.sd.period,
		"multiplier": b.multiplier,
	}
}

func (b *BollingerBands) String() string {
	return fmt.Sprintf("BB(%d, %v)", b.sd.period, b.multiplier)
}
