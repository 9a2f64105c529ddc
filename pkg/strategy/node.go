package strategy

import (
	"fmt"

	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/types"
)

// SequenceMode controls how a sequence node aggregates its members'
// actions. Hold is the neutral element in every mode: members resolving to
// Hold never count as votes.
type SequenceMode string

const (
	// SequenceModeFirst resolves to the first non-Hold member action.
	SequenceModeFirst SequenceMode = "first"
	// SequenceModeAny is an alias of first kept for compatibility with
	// trees that spell the intent explicitly.
	SequenceModeAny SequenceMode = "any"
	// SequenceModeAll resolves to the common action only when every voting
	// member agrees; otherwise Hold.
	SequenceModeAll SequenceMode = "all"
	// SequenceModeMajority resolves to the uniquely most frequent vote; a
	// tie resolves to Hold.
	SequenceModeMajority SequenceMode = "majority"
	// SequenceModePercentage resolves to the most frequent vote reaching
	// the configured share of votes; a tie at the top resolves to Hold.
	SequenceModePercentage SequenceMode = "percentage"
)

func (m SequenceMode) valid() bool {
	switch m {
	case SequenceModeFirst, SequenceModeAny, SequenceModeAll, SequenceModeMajority, SequenceModePercentage:
		return true
	default:
		return false
	}
}

// Node is one vertex of a strategy tree. Update advances every indicator
// beneath the node once per observation; Evaluate walks the tree over the
// cached outputs and resolves to an action, side-effect-free.
type Node interface {
	Evaluate(data *types.MarketData) (types.Action, error)
	Update(data types.MarketData) error
	Period() int
	Reset()
	Document() map[string]any
	validate(path string) error
}

// If branches on a condition. A missing else-branch resolves to Hold.
type If struct {
	condition Condition
	then      Node
	els       Node
}

// NewIf builds a conditional node. els may be nil, in which case a false
// condition resolves to Hold.
func NewIf(condition Condition, then, els Node) *If {
	return &If{condition: condition, then: then, els: els}
}

// Update advances the condition and both branches.
func (n *If) Update(data types.MarketData) error {
	if err := n.condition.Update(data); err != nil {
		return err
	}

	if err := n.then.Update(data); err != nil {
		return err
	}

	if n.els != nil {
		return n.els.Update(data)
	}

	return nil
}

// Evaluate resolves the condition and recurses into the chosen branch.
func (n *If) Evaluate(data *types.MarketData) (types.Action, error) {
	held, err := n.condition.Evaluate(data)
	if err != nil {
		return types.ActionHold, err
	}

	if held {
		return n.then.Evaluate(data)
	}

	if n.els != nil {
		return n.els.Evaluate(data)
	}

	return types.ActionHold, nil
}

// Period returns the longest warm-up beneath the node.
func (n *If) Period() int {
	period := n.condition.Period()
	if p := n.then.Period(); p > period {
		period = p
	}

	if n.els != nil {
		if p := n.els.Period(); p > period {
			period = p
		}
	}

	return period
}

// Reset restores the condition and both branches.
func (n *If) Reset() {
	n.condition.Reset()
	n.then.Reset()

	if n.els != nil {
		n.els.Reset()
	}
}

// Document renders the node as a type-tagged record. The else branch is
// omitted when absent.
func (n *If) Document() map[string]any {
	doc := map[string]any{
		"type":      "if",
		"condition": n.condition.Document(),
		"then":      n.then.Document(),
	}

	if n.els != nil {
		doc["else"] = n.els.Document()
	}

	return doc
}

func (n *If) validate(path string) error {
	if n.condition == nil {
		return errors.Newf(errors.ErrCodeUnknownNode, "%s: conditional has no condition", path)
	}

	if err := n.condition.validate(path + ".condition"); err != nil {
		return err
	}

	if n.then == nil {
		return errors.Newf(errors.ErrCodeMissingBranch, "%s: conditional has no then branch", path)
	}

	if err := n.then.validate(path + ".then"); err != nil {
		return err
	}

	// No else branch is fine: a false condition resolves to Hold.
	if n.els != nil {
		return n.els.validate(path + ".else")
	}

	return nil
}

// ActionNode is a terminal resolving to a fixed action.
type ActionNode struct {
	action types.Action
}

// NewAction builds a terminal node.
func NewAction(action types.Action) *ActionNode {
	return &ActionNode{action: action}
}

// Update is a no-op; terminals reference no indicators.
func (n *ActionNode) Update(types.MarketData) error {
	return nil
}

// Evaluate resolves to the fixed action.
func (n *ActionNode) Evaluate(*types.MarketData) (types.Action, error) {
	return n.action, nil
}

// Period returns zero; terminals need no warm-up.
func (n *ActionNode) Period() int {
	return 0
}

// Reset is a no-op.
func (n *ActionNode) Reset() {}

// Document renders the node as a type-tagged record.
func (n *ActionNode) Document() map[string]any {
	return map[string]any{
		"type":   "action",
		"action": string(n.action),
	}
}

func (n *ActionNode) validate(path string) error {
	if err := n.action.Validate(); err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidAction, err, "%s: malformed action", path)
	}

	return nil
}

// Sequence evaluates its members in declared order and aggregates their
// actions under the configured mode.
type Sequence struct {
	mode      SequenceMode
	threshold int
	nodes     []Node
}

// NewSequence builds a sequence node. The threshold only matters in
// percentage mode and is expressed as 0-100.
func NewSequence(mode SequenceMode, nodes ...Node) *Sequence {
	return &Sequence{mode: mode, nodes: nodes}
}

// NewPercentageSequence builds a sequence resolving to an action only when
// it gathers at least threshold percent of the non-Hold votes.
func NewPercentageSequence(threshold int, nodes ...Node) *Sequence {
	return &Sequence{mode: SequenceModePercentage, threshold: threshold, nodes: nodes}
}

// Update advances every member.
func (n *Sequence) Update(data types.MarketData) error {
	for _, node := range n.nodes {
		if err := node.Update(data); err != nil {
			return err
		}
	}

	return nil
}

// Evaluate collects every member's action and aggregates per mode.
func (n *Sequence) Evaluate(data *types.MarketData) (types.Action, error) {
	votes := make([]types.Action, 0, len(n.nodes))

	for _, node := range n.nodes {
		action, err := node.Evaluate(data)
		if err != nil {
			return types.ActionHold, err
		}

		if action != types.ActionHold {
			votes = append(votes, action)
		}
	}

	return n.aggregate(votes), nil
}

func (n *Sequence) aggregate(votes []types.Action) types.Action {
	if len(votes) == 0 {
		return types.ActionHold
	}

	switch n.mode {
	case SequenceModeFirst, SequenceModeAny:
		return votes[0]
	case SequenceModeAll:
		first := votes[0]
		for _, v := range votes[1:] {
			if v != first {
				return types.ActionHold
			}
		}

		return first
	case SequenceModeMajority:
		return pickLeader(votes, 0)
	default:
		return pickLeader(votes, n.threshold)
	}
}

// pickLeader returns the uniquely most frequent vote whose share reaches
// the threshold; ties and misses resolve to Hold.
func pickLeader(votes []types.Action, threshold int) types.Action {
	counts := make(map[types.Action]int, len(votes))
	for _, v := range votes {
		counts[v]++
	}

	leader, best, tied := types.ActionHold, 0, false

	// AllActions gives a stable iteration order.
	for _, action := range types.AllActions {
		c := counts[action]
		if c == 0 || action == types.ActionHold {
			continue
		}

		if c > best {
			leader, best, tied = action, c, false
		} else if c == best {
			tied = true
		}
	}

	if tied || best == 0 {
		return types.ActionHold
	}

	if best*100 < threshold*len(votes) {
		return types.ActionHold
	}

	return leader
}

// Period returns the longest warm-up among the members.
func (n *Sequence) Period() int {
	var period int
	for _, node := range n.nodes {
		if p := node.Period(); p > period {
			period = p
		}
	}

	return period
}

// Reset restores every member.
func (n *Sequence) Reset() {
	for _, node := range n.nodes {
		node.Reset()
	}
}

// Document renders the node as a type-tagged record. The threshold is only
// written in percentage mode.
func (n *Sequence) Document() map[string]any {
	docs := make([]any, len(n.nodes))
	for i, node := range n.nodes {
		docs[i] = node.Document()
	}

	doc := map[string]any{
		"type":  "sequence",
		"mode":  string(n.mode),
		"nodes": docs,
	}

	if n.mode == SequenceModePercentage {
		doc["threshold"] = n.threshold
	}

	return doc
}

func (n *Sequence) validate(path string) error {
	if !n.mode.valid() {
		return errors.Newf(errors.ErrCodeUnknownNode, "%s: unknown sequence mode %q", path, n.mode)
	}

	if len(n.nodes) == 0 {
		return errors.Newf(errors.ErrCodeEmptySequence, "%s: sequence has no members", path)
	}

	if n.mode == SequenceModePercentage && (n.threshold < 0 || n.threshold > 100) {
		return errors.Newf(errors.ErrCodeInvalidPercentage,
			"%s: percentage threshold must be within 0-100, got %d", path, n.threshold)
	}

	for i, node := range n.nodes {
		if node == nil {
			return errors.Newf(errors.ErrCodeUnknownNode, "%s.sequence[%d]: member is nil", path, i)
		}

		if err := node.validate(fmt.Sprintf("%s.sequence[%d]", path, i)); err != nil {
			return err
		}
	}

	return nil
}
