package indicator

import (
	"fmt"

	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/types"
)

// SMMA is the smoothed moving average, an exponential average with smoothing
// factor alpha = 1 / period (Wilder smoothing).
type SMMA struct {
	core emaCore
}

// NewSMMA creates a smoothed moving average over the given period. A period
// of 1 would degenerate to the raw series, so at least 2 is required.
func NewSMMA(period int) (*SMMA, error) {
	if period < 2 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod,
			"smoothed moving average period must be at least 2, got %d", period)
	}

	return &SMMA{core: newEMACore(period, 1.0/float64(period))}, nil
}

// Next consumes the observation's closing price.
func (s *SMMA) Next(data types.MarketData) (optional.Option[types.Output], error) {
	v, ok := s.core.step(data.Close())
	if !ok {
		return notReady()
	}

	return ready(types.Scalar(v))
}

// Reset restores the freshly constructed state.
func (s *SMMA) Reset() {
	s.core.reset()
}

// Period returns the warm-up length.
func (s *SMMA) Period() int {
	return s.core.period
}

// Shape returns the output shape.
func (s *SMMA) Shape() types.OutputShape {
	return types.OutputShapeScalar
}

// Type returns the indicator's serialization tag.
func (s *SMMA) Type() types.IndicatorType {
	return types.IndicatorTypeSMMA
}

// Document renders the construction parameters.
func (s *SMMA) Document() map[string]any {
	return map[string]any{
		"type":   string(types.IndicatorTypeSMMA),
		"period": s.core.period,
	}
}

func (s *SMMA) String() string {
	return fmt.Sprintf("SMMA(%d)", s.core.period)
}
