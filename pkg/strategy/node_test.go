package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rxtech-lab/argo-ta/pkg/indicator"
	"github.com/rxtech-lab/argo-ta/pkg/types"
)

func above(v float64) Condition {
	return GreaterThan(indicator.NewNone(), types.Scalar(v))
}

// branch resolves to the action when price exceeds the threshold, Hold
// otherwise.
func branch(threshold float64, action types.Action) Node {
	return NewIf(above(threshold), NewAction(action), nil)
}

func evaluateAt(t *testing.T, node Node, p float64) types.Action {
	t.Helper()

	data := price(p)
	require.NoError(t, node.Update(data))

	action, err := node.Evaluate(&data)
	require.NoError(t, err)

	return action
}

func TestIfWithoutElseResolvesToHold(t *testing.T) {
	node := NewIf(above(100), NewAction(types.ActionBuy), nil)

	assert.Equal(t, types.ActionBuy, evaluateAt(t, node, 150))
	assert.Equal(t, types.ActionHold, evaluateAt(t, node, 50))
}

func TestIfElseBranch(t *testing.T) {
	node := NewIf(above(100), NewAction(types.ActionBuy), NewAction(types.ActionSell))

	assert.Equal(t, types.ActionBuy, evaluateAt(t, node, 150))
	assert.Equal(t, types.ActionSell, evaluateAt(t, node, 50))
}

func TestSequenceFirstSkipsHolds(t *testing.T) {
	node := NewSequence(SequenceModeFirst,
		branch(1000, types.ActionStrongBuy),
		branch(100, types.ActionBuy),
		branch(10, types.ActionSell),
	)

	// Price 150: the first member holds, the second fires.
	assert.Equal(t, types.ActionBuy, evaluateAt(t, node, 150))
	assert.Equal(t, types.ActionSell, evaluateAt(t, node, 50))
	assert.Equal(t, types.ActionHold, evaluateAt(t, node, 5))
}

func TestSequenceAllRequiresAgreement(t *testing.T) {
	agree := NewSequence(SequenceModeAll,
		branch(10, types.ActionBuy),
		branch(20, types.ActionBuy),
	)
	assert.Equal(t, types.ActionBuy, evaluateAt(t, agree, 50))

	disagree := NewSequence(SequenceModeAll,
		branch(10, types.ActionBuy),
		branch(20, types.ActionSell),
	)
	assert.Equal(t, types.ActionHold, evaluateAt(t, disagree, 50))

	// Hold-resolving members do not break agreement.
	partial := NewSequence(SequenceModeAll,
		branch(10, types.ActionBuy),
		branch(1000, types.ActionSell),
	)
	assert.Equal(t, types.ActionBuy, evaluateAt(t, partial, 50))
}

func TestSequenceMajority(t *testing.T) {
	node := NewSequence(SequenceModeMajority,
		branch(10, types.ActionBuy),
		branch(20, types.ActionBuy),
		branch(30, types.ActionSell),
	)
	assert.Equal(t, types.ActionBuy, evaluateAt(t, node, 50))

	tie := NewSequence(SequenceModeMajority,
		branch(10, types.ActionBuy),
		branch(20, types.ActionSell),
	)
	assert.Equal(t, types.ActionHold, evaluateAt(t, tie, 50))
}

func TestSequencePercentage(t *testing.T) {
	node := NewPercentageSequence(75,
		branch(10, types.ActionBuy),
		branch(20, types.ActionBuy),
		branch(30, types.ActionBuy),
		branch(40, types.ActionSell),
	)

	// Buy holds 3 of 4 votes: exactly 75%.
	assert.Equal(t, types.ActionBuy, evaluateAt(t, node, 50))

	strict := NewPercentageSequence(80,
		branch(10, types.ActionBuy),
		branch(20, types.ActionBuy),
		branch(30, types.ActionBuy),
		branch(40, types.ActionSell),
	)
	assert.Equal(t, types.ActionHold, evaluateAt(t, strict, 50))
}

func TestNodePeriodIsDeepMax(t *testing.T) {
	ema, err := indicator.NewEMA(50)
	require.NoError(t, err)

	rsi, err := indicator.NewRSI(14)
	require.NoError(t, err)

	node := NewIf(
		NewAnd(
			GreaterThan(ema, types.Scalar(0)),
			GreaterThan(rsi, types.Scalar(50)),
		),
		NewAction(types.ActionBuy),
		NewSequence(SequenceModeFirst, NewAction(types.ActionHold)),
	)

	assert.Equal(t, 50, node.Period())
}

func TestNodeDocumentRoundTrip(t *testing.T) {
	ema, err := indicator.NewEMA(20)
	require.NoError(t, err)

	sma, err := indicator.NewSMA(5)
	require.NoError(t, err)

	node := NewSequence(SequenceModeMajority,
		NewIf(
			NewOr(
				CrossOver(ema, types.Scalar(100)),
				NewNot(LessThan(sma, types.ClosePrice())),
				NewIndicatorComparison(OpGreaterThan, indicator.NewNone(), indicator.NewStandardAlligator()),
			),
			NewAction(types.ActionStrongBuy),
			NewAction(types.ActionSell),
		),
		NewPercentageSequence(60,
			NewIf(above(10), NewAction(types.ActionBuy), nil),
		),
	)

	doc := node.Document()

	decoded, err := NodeFromDocument(doc)
	require.NoError(t, err)

	assert.Equal(t, doc, decoded.Document())
	assert.Equal(t, node.Period(), decoded.Period())
}
