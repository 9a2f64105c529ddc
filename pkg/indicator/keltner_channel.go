package indicator

import (
	"fmt"

	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/types"
)

// KeltnerChannel places bands around an EMA of the typical price at a
// multiple of the average true range. Output is the 3-tuple
// (upper, middle, lower).
type KeltnerChannel struct {
	period     int
	multiplier float64
	ema        emaCore
	atr        ATR
}

// NewKeltnerChannel creates a Keltner channel over the given period and band
// multiplier.
func NewKeltnerChannel(period int, multiplier float64) (*KeltnerChannel, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	if multiplier <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidMultiplier,
			"band multiplier must be positive, got %v", multiplier)
	}

	return &KeltnerChannel{
		period:     period,
		multiplier: multiplier,
		ema:        newEMACore(period, 2.0/float64(period+1)),
		atr:        ATR{period: period, smooth: newEMACore(period, 1.0/float64(period))},
	}, nil
}

// Next consumes one observation: the EMA tracks the typical price while the
// ATR consumes the full range.
func (k *KeltnerChannel) Next(data types.MarketData) (optional.Option[types.Output], error) {
	middle, emaOK := k.ema.step(data.TypicalPrice())

	atr, atrOK := k.atr.step(data)
	if !emaOK || !atrOK {
		return notReady()
	}

	offset := k.multiplier * atr

	return ready(types.Tuple(middle+offset, middle, middle-offset))
}

// Reset restores the freshly constructed state.
func (k *KeltnerChannel) Reset() {
	k.ema.reset()
	k.atr.Reset()
}

// Period returns the warm-up length, dominated by the ATR's one-step lag.
func (k *KeltnerChannel) Period() int {
	return k.period + 1
}

// Shape returns the output shape.
func (k *KeltnerChannel) Shape() types.OutputShape {
	return types.OutputShape(3)
}

// Type returns the indicator's serialization tag.
func (k *KeltnerChannel) Type() types.IndicatorType {
	return types.IndicatorTypeKeltnerChannel
}

// Document renders the construction parameters.
func (k *KeltnerChannel) Document() map[string]any {
	return map[string]any{
		"type":       string(types.IndicatorTypeKeltnerChannel),
		"period":     k.period,
		"multiplier": k.multiplier,
	}
}

func (k *KeltnerChannel) String() string {
	return fmt.Sprintf("KC(%d, %v)", k.period, k.multiplier)
}
