package indicator

import (
	"math"

	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/argo-ta/pkg/types"
)

// TrueRange measures the largest of high-low, |high-prev close| and
// |low-prev close|. It needs one prior observation to anchor the previous
// close, so its warm-up length is 2.
type TrueRange struct {
	prevClose float64
	hasPrev   bool
}

// NewTrueRange creates a true range indicator.
func NewTrueRange() *TrueRange {
	return &TrueRange{}
}

// step consumes one raw observation. ok is false on the first observation.
func (t *TrueRange) step(data types.MarketData) (float64, bool) {
	if !t.hasPrev {
		t.prevClose = data.Close()
		t.hasPrev = true

		return 0, false
	}

	high, low := data.High(), data.Low()
	tr := math.Max(high-low, math.Max(math.Abs(high-t.prevClose), math.Abs(low-t.prevClose)))
	t.prevClose = data.Close()

	return tr, true
}

// Next consumes one observation.
func (t *TrueRange) Next(data types.MarketData) (optional.Option[types.Output], error) {
	v, ok := t.step(data)
	if !ok {
		return notReady()
	}

	return ready(types.Scalar(v))
}

// Reset restores the freshly constructed state.
func (t *TrueRange) Reset() {
	t.prevClose = 0
	t.hasPrev = false
}

// Period returns the warm-up length.
func (t *TrueRange) Period() int {
	return 2
}

// Shape returns the output shape.
func (t *TrueRange) Shape() types.OutputShape {
	return types.OutputShapeScalar
}

// Type returns the indicator's serialization tag.
func (t *TrueRange) Type() types.IndicatorType {
	return types.IndicatorTypeTrueRange
}

// Document renders the construction parameters.
func (t *TrueRange) Document() map[string]any {
	return map[string]any{"type": string(types.IndicatorTypeTrueRange)}
}

func (t *TrueRange) String() string {
	return "TR()"
}
