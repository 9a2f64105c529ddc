package indicator

import (
	"fmt"
	"math"

	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/argo-ta/pkg/types"
)

// MeanAbsoluteError is the rolling mean absolute deviation of the closing
// price from the window's own mean.
type MeanAbsoluteError struct {
	period int
	window *queue
}

// NewMeanAbsoluteError creates a rolling mean absolute deviation over the
// given period.
func NewMeanAbsoluteError(period int) (*MeanAbsoluteError, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	return &MeanAbsoluteError{period: period, window: newQueue(period)}, nil
}

// Next consumes the observation's closing price.
func (m *MeanAbsoluteError) Next(data types.MarketData) (optional.Option[types.Output], error) {
	m.window.push(data.Close())

	if !m.window.full() {
		return notReady()
	}

	values := m.window.values()

	var mean float64
	for _, v := range values {
		mean += v
	}

	mean /= float64(len(values))

	var mae float64
	for _, v := range values {
		mae += math.Abs(v - mean)
	}

	mae /= float64(len(values))

	return ready(types.Scalar(mae))
}

// Reset restores the freshly constructed state.
func (m *MeanAbsoluteError) Reset() {
	m.window.reset()
}

// Period returns the warm-up length.
func (m *MeanAbsoluteError) Period() int {
	return m.period
}

// Shape returns the output shape.
func (m *MeanAbsoluteError) Shape() types.OutputShape {
	return types.OutputShapeScalar
}

// Type returns the indicator's serialization tag.
func (m *MeanAbsoluteError) Type() types.IndicatorType {
	return types.IndicatorTypeMeanAbsoluteError
}

// Document renders the construction parameters.
func (m *MeanAbsoluteError) Document() map[string]any {
	return map[string]any{
		"type":   string(types.IndicatorTypeMeanAbsoluteError),
		"period": m.period,
	}
}

func (m *MeanAbsoluteError) String() string {
	return fmt.Sprintf("MAE(%d)", m.period)
}
