package types

import "github.com/rxtech-lab/argo-ta/pkg/errors"

// Action is the verdict a strategy resolves to after one evaluation.
type Action string

const (
	// ActionStrongBuy is a buy signal with strong conviction.
	ActionStrongBuy Action = "strong_buy"
	// ActionBuy is a buy signal with normal conviction.
	ActionBuy Action = "buy"
	// ActionHold means do nothing or keep the current position.
	ActionHold Action = "hold"
	// ActionSell is a sell signal with normal conviction.
	ActionSell Action = "sell"
	// ActionStrongSell is a sell signal with strong conviction.
	ActionStrongSell Action = "strong_sell"
)

// AllActions lists every valid action, ordered by conviction descending.
var AllActions = []Action{
	ActionStrongBuy,
	ActionBuy,
	ActionHold,
	ActionSell,
	ActionStrongSell,
}

// Conviction orders actions on a buy/sell axis: strong_buy=2, buy=1, hold=0,
// sell=-1, strong_sell=-2.
func (a Action) Conviction() int {
	switch a {
	case ActionStrongBuy:
		return 2
	case ActionBuy:
		return 1
	case ActionSell:
		return -1
	case ActionStrongSell:
		return -2
	default:
		return 0
	}
}

// Validate checks that the action is one of the closed set.
func (a Action) Validate() error {
	switch a {
	case ActionStrongBuy, ActionBuy, ActionHold, ActionSell, ActionStrongSell:
		return nil
	default:
		return errors.Newf(errors.ErrCodeInvalidAction, "unknown action %q", string(a))
	}
}
