package indicator

import (
	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/argo-ta/pkg/types"
)

// None is the passthrough indicator: it emits the closing price unchanged
// and is ready from the first observation. Useful for conditions that
// compare raw price against a threshold.
type None struct{}

// NewNone creates a passthrough indicator.
func NewNone() *None {
	return &None{}
}

// Next emits the observation's closing price.
func (n *None) Next(data types.MarketData) (optional.Option[types.Output], error) {
	return ready(types.Scalar(data.Close()))
}

// Reset is a no-op; the passthrough holds no state.
func (n *None) Reset() {}

// Period returns the warm-up length.
func (n *None) Period() int {
	return 0
}

// Shape returns the output shape.
func (n *None) Shape() types.OutputShape {
	return types.OutputShapeScalar
}

// Type returns the indicator's serialization tag.
func (n *None) Type() types.IndicatorType {
	return types.IndicatorTypeNone
}

// Document renders the construction parameters.
func (n *None) Document() map[string]any {
	return map[string]any{"type": string(types.IndicatorTypeNone)}
}

func (n *None) String() string {
	return "None()"
}
