package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rxtech-lab/argo-ta/pkg/types"
)

func TestRSIStaysInRange(t *testing.T) {
	rsi, err := NewRSI(14)
	require.NoError(t, err)

	for _, out := range feed(t, rsi, choppyCandles(200)) {
		if out.IsNone() {
			continue
		}

		v, ok := out.Unwrap().AsScalar()
		require.True(t, ok)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 100.0)
	}
}

func TestRSIStrictlyRisingPinsToCeiling(t *testing.T) {
	rsi, err := NewRSI(14)
	require.NoError(t, err)

	outputs := feed(t, rsi, risingCandles(40))

	// No losses in the window, so the index sits at its ceiling.
	for i, out := range outputs {
		if i+1 < rsi.Period() {
			assert.True(t, out.IsNone())

			continue
		}

		v, _ := out.Unwrap().AsScalar()
		assert.Equal(t, 100.0, v)
	}
}

func TestRSIStrictlyFallingPinsToFloor(t *testing.T) {
	rsi, err := NewRSI(14)
	require.NoError(t, err)

	data := make([]types.MarketData, 40)
	for i := range data {
		data[i] = types.FromPrice(1000 - float64(i)*2)
	}

	outputs := feed(t, rsi, data)

	for i, out := range outputs {
		if out.IsNone() {
			continue
		}

		v, _ := out.Unwrap().AsScalar()
		assert.InDelta(t, 0.0, v, 1e-12, "observation %d", i)
	}
}

func TestRSIWarmUpCountsChanges(t *testing.T) {
	rsi, err := NewRSI(3)
	require.NoError(t, err)

	// Three price changes need four observations.
	assert.Equal(t, 4, rsi.Period())

	outputs := feed(t, rsi, []types.MarketData{
		types.FromPrice(10),
		types.FromPrice(11),
		types.FromPrice(10),
		types.FromPrice(12),
	})

	assert.True(t, outputs[0].IsNone())
	assert.True(t, outputs[1].IsNone())
	assert.True(t, outputs[2].IsNone())
	require.True(t, outputs[3].IsSome())

	// avg gain = (1+0+2)/3, avg loss = (0+1+0)/3.
	v, _ := outputs[3].Unwrap().AsScalar()
	rs := 1.0 / (1.0 / 3.0)
	assert.InDelta(t, 100-100/(1+rs), v, 1e-12)
}
