package indicator

import (
	"fmt"

	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/types"
)

// MACD is moving average convergence divergence: the difference between a
// fast and a slow EMA, a signal EMA of that difference, and their histogram.
// Output is the 3-tuple (line, signal, histogram).
type MACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
	fast         emaCore
	slow         emaCore
	signal       emaCore
}

// NewMACD creates a MACD with the given fast, slow and signal periods. The
// fast period must be strictly shorter than the slow period.
func NewMACD(fastPeriod, slowPeriod, signalPeriod int) (*MACD, error) {
	for _, p := range []int{fastPeriod, slowPeriod, signalPeriod} {
		if err := validatePeriod(p); err != nil {
			return nil, err
		}
	}

	if fastPeriod >= slowPeriod {
		return nil, errors.Newf(errors.ErrCodePeriodOrder,
			"fast period %d must be shorter than slow period %d", fastPeriod, slowPeriod)
	}

	return &MACD{
		fastPeriod:   fastPeriod,
		slowPeriod:   slowPeriod,
		signalPeriod: signalPeriod,
		fast:         newEMACore(fastPeriod, 2.0/float64(fastPeriod+1)),
		slow:         newEMACore(slowPeriod, 2.0/float64(slowPeriod+1)),
		signal:       newEMACore(signalPeriod, 2.0/float64(signalPeriod+1)),
	}, nil
}

// Next consumes the observation's closing price.
func (m *MACD) Next(data types.MarketData) (optional.Option[types.Output], error) {
	v := data.Close()

	fast, _ := m.fast.step(v)
	slow, slowOK := m.slow.step(v)

	// The line exists only once the slow leg is seeded; the signal EMA
	// consumes line values from that point on.
	if !slowOK {
		return notReady()
	}

	line := fast - slow

	signal, signalOK := m.signal.step(line)
	if !signalOK {
		return notReady()
	}

	return ready(types.Tuple(line, signal, line-signal))
}

// Reset restores the freshly constructed state.
func (m *MACD) Reset() {
	m.fast.reset()
	m.slow.reset()
	m.signal.reset()
}

// Period returns the warm-up length.
func (m *MACD) Period() int {
	return m.slowPeriod + m.signalPeriod - 1
}

// Shape returns the output shape.
func (m *MACD) Shape() types.OutputShape {
	return types.OutputShape(3)
}

// Type returns the indicator's serialization tag.
func (m *MACD) Type() types.IndicatorType {
	return types.IndicatorTypeMACD
}

// Document renders the construction parameters.
func (m *MACD) Document() map[string]any {
	return map[string]any{
		"type":          string(types.IndicatorTypeMACD),
		"fast_period":   m.fastPeriod,
		"slow_period":   m.slowPeriod,
		"signal_period": m.signalPeriod,
	}
}

func (m *MACD) String() string {
	return fmt.Sprintf("MACD(%d, %d, %d)", m.fastPeriod, m.slowPeriod, m.signalPeriod)
}
