package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/indicator"
	"github.com/rxtech-lab/argo-ta/pkg/types"
)

// trendFollower builds the canonical momentum tree: StrongBuy when the
// close is above a long EMA with RSI and awesome-oscillator confirmation,
// Hold otherwise.
func trendFollower(t *testing.T) *Strategy {
	t.Helper()

	ema, err := indicator.NewEMA(200)
	require.NoError(t, err)

	rsi, err := indicator.NewRSI(14)
	require.NoError(t, err)

	ao, err := indicator.NewAwesomeOscillator(5, 34)
	require.NoError(t, err)

	root := NewIf(
		NewAnd(
			NewIndicatorComparison(OpLessThan, ema, indicator.NewNone()),
			GreaterThan(rsi, types.Scalar(55)),
			GreaterThan(ao, types.Scalar(0)),
		),
		NewAction(types.ActionStrongBuy),
		NewAction(types.ActionHold),
	)

	s, err := New(root)
	require.NoError(t, err)

	return s
}

func TestRisingSeriesTurnsStrongBuyAfterWarmUp(t *testing.T) {
	s := trendFollower(t)
	require.Equal(t, 200, s.Period())

	for i := 0; i < 230; i++ {
		close := 100.0 + float64(i)
		out, err := s.Evaluate(types.FromCandle(types.Candle{
			Open:   close - 0.5,
			High:   close + 1,
			Low:    close - 1,
			Close:  close,
			Volume: 1000,
		}))
		require.NoError(t, err)

		if i+1 < 200 {
			assert.True(t, out.IsNone(), "observation %d should still be warming up", i+1)

			continue
		}

		require.True(t, out.IsSome(), "observation %d should produce a verdict", i+1)
		assert.Equal(t, types.ActionStrongBuy, out.Unwrap(), "observation %d", i+1)
	}
}

func TestStrategyResetReplaysIdentically(t *testing.T) {
	s := trendFollower(t)

	series := make([]types.MarketData, 210)
	for i := range series {
		close := 100.0 + float64((i*13)%37)
		series[i] = types.FromCandle(types.Candle{High: close + 1, Low: close - 1, Close: close, Volume: 100})
	}

	run := func() []string {
		out := make([]string, 0, len(series))

		for _, d := range series {
			verdict, err := s.Evaluate(d)
			require.NoError(t, err)

			if verdict.IsNone() {
				out = append(out, "wait")
			} else {
				out = append(out, string(verdict.Unwrap()))
			}
		}

		return out
	}

	first := run()

	s.Reset()

	assert.Equal(t, first, run())
}

func TestStrategyDocumentRoundTripPreservesBehavior(t *testing.T) {
	original := trendFollower(t)

	rebuilt, err := FromDocument(original.Document())
	require.NoError(t, err)

	assert.Equal(t, original.Document(), rebuilt.Document())
	assert.Equal(t, original.Period(), rebuilt.Period())

	for i := 0; i < 230; i++ {
		close := 100.0 + float64(i)
		data := types.FromCandle(types.Candle{High: close + 1, Low: close - 1, Close: close, Volume: 100})

		a, err := original.Evaluate(data)
		require.NoError(t, err)

		b, err := rebuilt.Evaluate(data)
		require.NoError(t, err)

		require.Equal(t, a.IsSome(), b.IsSome(), "readiness diverged at observation %d", i+1)

		if a.IsSome() {
			assert.Equal(t, a.Unwrap(), b.Unwrap())
		}
	}
}

func TestValidateAcceptsMissingElse(t *testing.T) {
	root := NewIf(above(10), NewAction(types.ActionBuy), nil)
	assert.NoError(t, Validate(root))
}

func TestValidateRejectsEmptySequence(t *testing.T) {
	root := NewSequence(SequenceModeFirst)
	err := Validate(root)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeEmptySequence))
	assert.Contains(t, err.Error(), "root")
}

func TestValidateRejectsNilIndicator(t *testing.T) {
	root := NewSequence(SequenceModeFirst,
		NewAction(types.ActionHold),
		NewIf(NewComparison(OpGreaterThan, nil, types.Scalar(1)), NewAction(types.ActionBuy), nil),
	)

	err := Validate(root)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeMissingIndicator))
	assert.Contains(t, err.Error(), "root.sequence[1].condition")
}

func TestValidateRejectsBadPercentage(t *testing.T) {
	root := NewPercentageSequence(140, NewAction(types.ActionBuy))
	err := Validate(root)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidPercentage))
}

func TestValidateRejectsMalformedAction(t *testing.T) {
	root := NewAction(types.Action("yolo"))
	err := Validate(root)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidAction))
}

func TestNewRejectsInvalidTree(t *testing.T) {
	s, err := New(NewSequence(SequenceModeFirst))
	require.Error(t, err)
	assert.Nil(t, s)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidStrategy))
}

func TestValidateRejectsEmptyTree(t *testing.T) {
	assert.Error(t, Validate(nil))
}
