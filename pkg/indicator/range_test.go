package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/types"
)

func TestTrueRangeNeedsPriorClose(t *testing.T) {
	tr := NewTrueRange()

	first, err := tr.Next(types.FromCandle(types.Candle{High: 12, Low: 8, Close: 10}))
	require.NoError(t, err)
	assert.True(t, first.IsNone())

	// Gap up: high-prev close dominates high-low.
	second, err := tr.Next(types.FromCandle(types.Candle{High: 16, Low: 14, Close: 15}))
	require.NoError(t, err)
	require.True(t, second.IsSome())

	v, _ := second.Unwrap().AsScalar()
	assert.InDelta(t, 6.0, v, 1e-12)
}

func TestATRConstantRange(t *testing.T) {
	atr, err := NewATR(5)
	require.NoError(t, err)

	data := make([]types.MarketData, 20)
	for i := range data {
		data[i] = types.FromCandle(types.Candle{High: 102, Low: 98, Close: 100})
	}

	for i, out := range feed(t, atr, data) {
		if i+1 < atr.Period() {
			assert.True(t, out.IsNone())

			continue
		}

		v, _ := out.Unwrap().AsScalar()
		assert.InDelta(t, 4.0, v, 1e-9)
	}
}

func TestStochasticFlatWindowBoundary(t *testing.T) {
	stoch, err := NewStochasticOscillator(14, 3)
	require.NoError(t, err)

	data := make([]types.MarketData, 30)
	for i := range data {
		data[i] = types.FromCandle(types.Candle{High: 50, Low: 50, Close: 50})
	}

	for i, out := range feed(t, stoch, data) {
		if i+1 < stoch.Period() {
			assert.True(t, out.IsNone())

			continue
		}

		vs, ok := out.Unwrap().AsTuple()
		require.True(t, ok)
		require.Len(t, vs, 2)
		assert.Equal(t, 0.0, vs[0], "flat range maps the fast line to the 0 boundary")
		assert.Equal(t, 0.0, vs[1])
	}
}

func TestStochasticKnownPosition(t *testing.T) {
	stoch, err := NewStochasticOscillator(3, 1)
	require.NoError(t, err)

	outputs := feed(t, stoch, []types.MarketData{
		types.FromCandle(types.Candle{High: 10, Low: 0, Close: 5}),
		types.FromCandle(types.Candle{High: 10, Low: 0, Close: 5}),
		types.FromCandle(types.Candle{High: 10, Low: 0, Close: 7.5}),
	})

	require.True(t, outputs[2].IsSome())

	vs, _ := outputs[2].Unwrap().AsTuple()
	assert.InDelta(t, 75.0, vs[0], 1e-12)
	assert.InDelta(t, 75.0, vs[1], 1e-12)
}

func TestWilliamsRFlatWindowBoundary(t *testing.T) {
	w, err := NewWilliamsR(5)
	require.NoError(t, err)

	data := make([]types.MarketData, 10)
	for i := range data {
		data[i] = types.FromCandle(types.Candle{High: 50, Low: 50, Close: 50})
	}

	for i, out := range feed(t, w, data) {
		if i+1 < w.Period() {
			continue
		}

		v, _ := out.Unwrap().AsScalar()
		assert.Equal(t, 0.0, v)
	}
}

func TestWilliamsRKnownPosition(t *testing.T) {
	w, err := NewWilliamsR(3)
	require.NoError(t, err)

	outputs := feed(t, w, []types.MarketData{
		types.FromCandle(types.Candle{High: 10, Low: 0, Close: 5}),
		types.FromCandle(types.Candle{High: 10, Low: 0, Close: 5}),
		types.FromCandle(types.Candle{High: 10, Low: 0, Close: 2.5}),
	})

	v, _ := outputs[2].Unwrap().AsScalar()
	assert.InDelta(t, -75.0, v, 1e-12)
}

func TestOnBalanceVolumeFixture(t *testing.T) {
	obv := NewOnBalanceVolume()

	closes := []float64{10, 12, 11, 11, 13}
	expected := []float64{100, 200, 100, 100, 200}

	for i, close := range closes {
		out, err := obv.Next(types.FromCandle(types.Candle{Close: close, Volume: 100}))
		require.NoError(t, err)
		require.True(t, out.IsSome())

		v, _ := out.Unwrap().AsScalar()
		assert.Equal(t, expected[i], v, "observation %d", i+1)
	}
}

func TestOnBalanceVolumeRejectsBarePrice(t *testing.T) {
	obv := NewOnBalanceVolume()

	_, err := obv.Next(types.FromPrice(10))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeMissingCandleContext))
}

func TestBollingerBandsOrdering(t *testing.T) {
	bb, err := NewBollingerBands(5, 2)
	require.NoError(t, err)

	for _, out := range feed(t, bb, choppyCandles(30)) {
		if out.IsNone() {
			continue
		}

		vs, ok := out.Unwrap().AsTuple()
		require.True(t, ok)
		require.Len(t, vs, 3)

		average, upper, lower := vs[0], vs[1], vs[2]
		assert.GreaterOrEqual(t, upper, average)
		assert.LessOrEqual(t, lower, average)
		assert.InDelta(t, average-(upper-average), lower, 1e-9)
	}
}

func TestBollingerBandsPopulationStdDev(t *testing.T) {
	bb, err := NewBollingerBands(4, 2)
	require.NoError(t, err)

	outputs := feed(t, bb, []types.MarketData{
		types.FromPrice(2),
		types.FromPrice(4),
		types.FromPrice(4),
		types.FromPrice(6),
	})

	require.True(t, outputs[3].IsSome())

	// mean 4, population variance (4+0+0+4)/4 = 2.
	vs, _ := outputs[3].Unwrap().AsTuple()
	assert.InDelta(t, 4.0, vs[0], 1e-9)
	assert.InDelta(t, 4.0+2*1.4142135623730951, vs[1], 1e-9)
	assert.InDelta(t, 4.0-2*1.4142135623730951, vs[2], 1e-9)
}

func TestKeltnerChannelOrdering(t *testing.T) {
	kc, err := NewKeltnerChannel(5, 2)
	require.NoError(t, err)

	for _, out := range feed(t, kc, choppyCandles(30)) {
		if out.IsNone() {
			continue
		}

		vs, ok := out.Unwrap().AsTuple()
		require.True(t, ok)
		require.Len(t, vs, 3)

		upper, middle, lower := vs[0], vs[1], vs[2]
		assert.Greater(t, upper, middle)
		assert.Less(t, lower, middle)
	}
}

func TestSuperTrendFollowsTrend(t *testing.T) {
	st, err := NewSuperTrend(5, 2)
	require.NoError(t, err)

	outputs := feed(t, st, risingCandles(40))

	last := outputs[len(outputs)-1]
	require.True(t, last.IsSome())

	vs, _ := last.Unwrap().AsTuple()
	require.Len(t, vs, 2)
	assert.Equal(t, 1.0, vs[1], "rising series should stay in an up-trend")

	// In an up-trend the level is the lower band, below the close.
	assert.Less(t, vs[0], 100.0+39.0)
}

func TestSuperTrendFlipsOnReversal(t *testing.T) {
	st, err := NewSuperTrend(3, 1)
	require.NoError(t, err)

	data := make([]types.MarketData, 0, 30)
	for i := 0; i < 15; i++ {
		close := 100.0 + float64(i)
		data = append(data, types.FromCandle(types.Candle{High: close + 1, Low: close - 1, Close: close}))
	}

	for i := 0; i < 15; i++ {
		close := 114.0 - float64(i)*5
		data = append(data, types.FromCandle(types.Candle{High: close + 1, Low: close - 1, Close: close}))
	}

	outputs := feed(t, st, data)

	rising := outputs[14]
	require.True(t, rising.IsSome())
	vs, _ := rising.Unwrap().AsTuple()
	assert.Equal(t, 1.0, vs[1])

	falling := outputs[len(outputs)-1]
	require.True(t, falling.IsSome())
	vs, _ = falling.Unwrap().AsTuple()
	assert.Equal(t, -1.0, vs[1], "steep sell-off should flip the trend")
}

func TestAlligatorShiftedLines(t *testing.T) {
	a, err := NewAlligator(3, 2, 3, 2, 3, 2)
	require.NoError(t, err)

	assert.Equal(t, 5, a.Period())

	// Identical lines with identical shifts stay equal.
	for i, out := range feed(t, a, choppyCandles(20)) {
		if i+1 < a.Period() {
			assert.True(t, out.IsNone())

			continue
		}

		vs, ok := out.Unwrap().AsTuple()
		require.True(t, ok)
		require.Len(t, vs, 3)
		assert.Equal(t, vs[0], vs[1])
		assert.Equal(t, vs[1], vs[2])
	}
}

func TestMeanAbsoluteErrorKnownWindow(t *testing.T) {
	mae, err := NewMeanAbsoluteError(4)
	require.NoError(t, err)

	outputs := feed(t, mae, []types.MarketData{
		types.FromPrice(2),
		types.FromPrice(4),
		types.FromPrice(4),
		types.FromPrice(6),
	})

	require.True(t, outputs[3].IsSome())

	// mean 4, deviations 2,0,0,2.
	v, _ := outputs[3].Unwrap().AsScalar()
	assert.InDelta(t, 1.0, v, 1e-12)
}
