package indicator

import (
	"fmt"
	"testing"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rxtech-lab/argo-ta/pkg/types"
)

// risingCandles builds a deterministic rising series with a small range
// around each close.
func risingCandles(n int) []types.MarketData {
	out := make([]types.MarketData, n)
	for i := range out {
		close := 100.0 + float64(i)
		out[i] = types.FromCandle(types.Candle{
			Open:   close - 0.5,
			High:   close + 1,
			Low:    close - 1,
			Close:  close,
			Volume: 1000 + float64(i),
		})
	}

	return out
}

// choppyCandles builds a deterministic non-monotonic series.
func choppyCandles(n int) []types.MarketData {
	out := make([]types.MarketData, n)
	for i := range out {
		close := 100.0 + float64((i*7)%13) - float64((i*3)%5)
		out[i] = types.FromCandle(types.Candle{
			Open:   close - 0.25,
			High:   close + 2,
			Low:    close - 2,
			Close:  close,
			Volume: 500 + float64(i%11)*10,
		})
	}

	return out
}

func feed(t *testing.T, ind Indicator, data []types.MarketData) []optional.Option[types.Output] {
	t.Helper()

	outputs := make([]optional.Option[types.Output], 0, len(data))

	for _, d := range data {
		out, err := ind.Next(d)
		require.NoError(t, err)
		outputs = append(outputs, out)
	}

	return outputs
}

// TestWarmUpAndShape checks every variant against its documented warm-up
// length and tuple arity.
func TestWarmUpAndShape(t *testing.T) {
	build := []struct {
		name  string
		make  func() (Indicator, error)
		shape types.OutputShape
	}{
		{"sma", func() (Indicator, error) { return NewSMA(5) }, 1},
		{"ema", func() (Indicator, error) { return NewEMA(5) }, 1},
		{"smma", func() (Indicator, error) { return NewSMMA(5) }, 1},
		{"rsi", func() (Indicator, error) { return NewRSI(14) }, 1},
		{"macd", func() (Indicator, error) { return NewMACD(12, 26, 9) }, 3},
		{"tr", func() (Indicator, error) { return NewTrueRange(), nil }, 1},
		{"atr", func() (Indicator, error) { return NewATR(14) }, 1},
		{"bollinger_bands", func() (Indicator, error) { return NewBollingerBands(20, 2) }, 3},
		{"keltner_channel", func() (Indicator, error) { return NewKeltnerChannel(20, 2) }, 3},
		{"super_trend", func() (Indicator, error) { return NewSuperTrend(10, 3) }, 2},
		{"stochastic_oscillator", func() (Indicator, error) { return NewStochasticOscillator(14, 3) }, 2},
		{"williams_r", func() (Indicator, error) { return NewWilliamsR(14) }, 1},
		{"ao", func() (Indicator, error) { return NewAwesomeOscillator(5, 34) }, 1},
		{"obv", func() (Indicator, error) { return NewOnBalanceVolume(), nil }, 1},
		{"standard_deviation", func() (Indicator, error) { return NewStandardDeviation(10) }, 1},
		{"mean_absolute_error", func() (Indicator, error) { return NewMeanAbsoluteError(10) }, 1},
		{"alligator", func() (Indicator, error) { return NewStandardAlligator(), nil }, 3},
	}

	data := risingCandles(60)

	for _, tc := range build {
		t.Run(tc.name, func(t *testing.T) {
			ind, err := tc.make()
			require.NoError(t, err)
			assert.Equal(t, types.IndicatorType(tc.name), ind.Type())
			assert.Equal(t, tc.shape, ind.Shape())

			period := ind.Period()
			require.LessOrEqual(t, period, len(data))

			outputs := feed(t, ind, data)

			for i, out := range outputs {
				if i+1 < period {
					assert.True(t, out.IsNone(), "observation %d should be warming up", i+1)

					continue
				}

				require.True(t, out.IsSome(), "observation %d should be ready", i+1)
				assert.Equal(t, tc.shape, out.Unwrap().Shape())
			}
		})
	}
}

// TestResetReproducesFreshOutputs replays the same series after a reset and
// expects bit-identical outputs.
func TestResetReproducesFreshOutputs(t *testing.T) {
	build := []func() (Indicator, error){
		func() (Indicator, error) { return NewSMA(7) },
		func() (Indicator, error) { return NewEMA(7) },
		func() (Indicator, error) { return NewSMMA(7) },
		func() (Indicator, error) { return NewRSI(7) },
		func() (Indicator, error) { return NewMACD(3, 9, 4) },
		func() (Indicator, error) { return NewTrueRange(), nil },
		func() (Indicator, error) { return NewATR(7) },
		func() (Indicator, error) { return NewBollingerBands(7, 2) },
		func() (Indicator, error) { return NewKeltnerChannel(7, 2) },
		func() (Indicator, error) { return NewSuperTrend(7, 3) },
		func() (Indicator, error) { return NewStochasticOscillator(7, 3) },
		func() (Indicator, error) { return NewWilliamsR(7) },
		func() (Indicator, error) { return NewAwesomeOscillator(3, 9) },
		func() (Indicator, error) { return NewOnBalanceVolume(), nil },
		func() (Indicator, error) { return NewStandardDeviation(7) },
		func() (Indicator, error) { return NewMeanAbsoluteError(7) },
		func() (Indicator, error) { return NewAlligator(5, 3, 4, 2, 3, 2) },
	}

	data := choppyCandles(40)

	for _, builder := range build {
		ind, err := builder()
		require.NoError(t, err)

		t.Run(ind.String(), func(t *testing.T) {
			first := feed(t, ind, data)

			ind.Reset()

			second := feed(t, ind, data)

			require.Len(t, second, len(first))

			for i := range first {
				assert.Equal(t, first[i].IsSome(), second[i].IsSome(), "readiness diverged at %d", i)

				if first[i].IsSome() {
					assert.True(t, first[i].Unwrap().Equal(second[i].Unwrap()), "output diverged at %d", i)
				}
			}
		})
	}
}

func TestConstructorValidation(t *testing.T) {
	cases := []struct {
		name string
		make func() (Indicator, error)
	}{
		{"sma zero period", func() (Indicator, error) { return NewSMA(0) }},
		{"ema negative period", func() (Indicator, error) { return NewEMA(-3) }},
		{"smma period one", func() (Indicator, error) { return NewSMMA(1) }},
		{"macd fast not shorter", func() (Indicator, error) { return NewMACD(26, 26, 9) }},
		{"ao short not shorter", func() (Indicator, error) { return NewAwesomeOscillator(34, 5) }},
		{"bb zero multiplier", func() (Indicator, error) { return NewBollingerBands(20, 0) }},
		{"kc negative multiplier", func() (Indicator, error) { return NewKeltnerChannel(20, -1) }},
		{"super_trend zero multiplier", func() (Indicator, error) { return NewSuperTrend(10, 0) }},
		{"alligator period one", func() (Indicator, error) { return NewAlligator(1, 8, 8, 5, 5, 3) }},
		{"alligator zero shift", func() (Indicator, error) { return NewAlligator(13, 0, 8, 5, 5, 3) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ind, err := tc.make()
			assert.Error(t, err)
			assert.Nil(t, ind)
		})
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	build := []func() (Indicator, error){
		func() (Indicator, error) { return NewNone(), nil },
		func() (Indicator, error) { return NewSMA(5) },
		func() (Indicator, error) { return NewEMA(200) },
		func() (Indicator, error) { return NewSMMA(9) },
		func() (Indicator, error) { return NewRSI(14) },
		func() (Indicator, error) { return NewMACD(12, 26, 9) },
		func() (Indicator, error) { return NewTrueRange(), nil },
		func() (Indicator, error) { return NewATR(14) },
		func() (Indicator, error) { return NewBollingerBands(20, 2.5) },
		func() (Indicator, error) { return NewKeltnerChannel(20, 1.5) },
		func() (Indicator, error) { return NewSuperTrend(10, 3) },
		func() (Indicator, error) { return NewStochasticOscillator(14, 3) },
		func() (Indicator, error) { return NewWilliamsR(14) },
		func() (Indicator, error) { return NewAwesomeOscillator(5, 34) },
		func() (Indicator, error) { return NewOnBalanceVolume(), nil },
		func() (Indicator, error) { return NewStandardDeviation(10) },
		func() (Indicator, error) { return NewMeanAbsoluteError(10) },
		func() (Indicator, error) { return NewAlligator(13, 8, 8, 5, 5, 3) },
	}

	for _, builder := range build {
		original, err := builder()
		require.NoError(t, err)

		t.Run(string(original.Type()), func(t *testing.T) {
			decoded, err := FromDocument(original.Document())
			require.NoError(t, err)

			assert.Equal(t, original.Type(), decoded.Type())
			assert.Equal(t, original.Period(), decoded.Period())
			assert.Equal(t, original.Shape(), decoded.Shape())
			assert.Equal(t, original.Document(), decoded.Document())

			// A decoded indicator starts fresh: same outputs as a new one.
			data := choppyCandles(30)
			fresh := feed(t, original, data)
			rebuilt := feed(t, decoded, data)

			for i := range fresh {
				require.Equal(t, fresh[i].IsSome(), rebuilt[i].IsSome())

				if fresh[i].IsSome() {
					assert.True(t, fresh[i].Unwrap().Equal(rebuilt[i].Unwrap()))
				}
			}
		})
	}
}

func TestFromDocumentErrors(t *testing.T) {
	_, err := FromDocument(map[string]any{"type": "vibes"})
	assert.Error(t, err)

	_, err = FromDocument(map[string]any{"period": 5})
	assert.Error(t, err)

	_, err = FromDocument(map[string]any{"type": "sma"})
	assert.Error(t, err)
}

func ExampleSMA() {
	sma, _ := NewSMA(3)

	for _, price := range []float64{2, 4, 6, 8} {
		out, _ := sma.Next(types.FromPrice(price))
		if out.IsSome() {
			fmt.Println(out.Unwrap())
		} else {
			fmt.Println("warming up")
		}
	}

	// Output:
	// warming up
	// warming up
	// 4
	// 6
}
