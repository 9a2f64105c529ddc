// Package strategy implements composable decision trees over streaming
// indicators. A tree is built from conditions comparing indicator outputs,
// branching nodes, and action leaves; one observation advances every
// indicator in the tree exactly once, after which evaluation is
// side-effect-free and repeatable.
package strategy

import (
	"fmt"

	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/indicator"
	"github.com/rxtech-lab/argo-ta/pkg/types"
)

// Op is the comparison operator of a condition leaf. The operator doubles
// as the leaf's serialization tag.
type Op string

const (
	OpGreaterThan        Op = "greater_than"
	OpLessThan           Op = "less_than"
	OpEquals             Op = "equals"
	OpGreaterThanOrEqual Op = "greater_than_or_equal"
	OpLessThanOrEqual    Op = "less_than_or_equal"
	// OpCrossOver holds when the indicator was at or below the comparand on
	// the previous observation and is above it now.
	OpCrossOver Op = "cross_over"
	// OpCrossUnder is the mirror of OpCrossOver.
	OpCrossUnder Op = "cross_under"
)

func (o Op) valid() bool {
	switch o {
	case OpGreaterThan, OpLessThan, OpEquals, OpGreaterThanOrEqual, OpLessThanOrEqual, OpCrossOver, OpCrossUnder:
		return true
	default:
		return false
	}
}

func (o Op) cmp() func(a, b float64) bool {
	switch o {
	case OpGreaterThan, OpCrossOver:
		return func(a, b float64) bool { return a > b }
	case OpLessThan, OpCrossUnder:
		return func(a, b float64) bool { return a < b }
	case OpEquals:
		return func(a, b float64) bool { return a == b }
	case OpGreaterThanOrEqual:
		return func(a, b float64) bool { return a >= b }
	default:
		return func(a, b float64) bool { return a <= b }
	}
}

// inverse is the comparison applied to the previous observation of a
// crossover leaf.
func (o Op) inverse() func(a, b float64) bool {
	if o == OpCrossOver {
		return func(a, b float64) bool { return a <= b }
	}

	return func(a, b float64) bool { return a >= b }
}

// Condition is a boolean expression over indicator outputs. Update advances
// every indicator referenced beneath the condition by one observation;
// Evaluate reads the cached outputs and is side-effect-free.
type Condition interface {
	Evaluate(data *types.MarketData) (bool, error)
	Update(data types.MarketData) error
	Period() int
	Reset()
	Document() map[string]any
	validate(path string) error
}

// Comparison is a condition leaf: one indicator's output compared against a
// literal value or against a second indicator's output.
type Comparison struct {
	op        Op
	indicator *indicator.State
	value     types.Output
	hasValue  bool
	other     *indicator.State
}

// NewComparison builds a leaf comparing an indicator against a literal
// value, which may be a scalar, a candle-price reference, or a composite
// masking slots of a multi-valued output.
func NewComparison(op Op, ind indicator.Indicator, value types.Output) *Comparison {
	c := &Comparison{op: op, value: value, hasValue: true}
	if ind != nil {
		c.indicator = indicator.NewState(ind)
	}

	return c
}

// NewIndicatorComparison builds a leaf comparing two indicators' outputs.
func NewIndicatorComparison(op Op, left, right indicator.Indicator) *Comparison {
	c := &Comparison{op: op}
	if left != nil {
		c.indicator = indicator.NewState(left)
	}

	if right != nil {
		c.other = indicator.NewState(right)
	}

	return c
}

// GreaterThan compares an indicator against a literal value.
func GreaterThan(ind indicator.Indicator, value types.Output) *Comparison {
	return NewComparison(OpGreaterThan, ind, value)
}

// LessThan compares an indicator against a literal value.
func LessThan(ind indicator.Indicator, value types.Output) *Comparison {
	return NewComparison(OpLessThan, ind, value)
}

// Equals compares an indicator against a literal value exactly.
func Equals(ind indicator.Indicator, value types.Output) *Comparison {
	return NewComparison(OpEquals, ind, value)
}

// CrossOver detects the indicator crossing above a literal value.
func CrossOver(ind indicator.Indicator, value types.Output) *Comparison {
	return NewComparison(OpCrossOver, ind, value)
}

// CrossUnder detects the indicator crossing below a literal value.
func CrossUnder(ind indicator.Indicator, value types.Output) *Comparison {
	return NewComparison(OpCrossUnder, ind, value)
}

// Update advances the referenced indicators.
func (c *Comparison) Update(data types.MarketData) error {
	if err := c.indicator.Update(data); err != nil {
		return err
	}

	if c.other != nil {
		return c.other.Update(data)
	}

	return nil
}

// Evaluate resolves the leaf against the cached indicator outputs.
func (c *Comparison) Evaluate(data *types.MarketData) (bool, error) {
	current := c.indicator.Current()
	if current.IsNone() {
		return false, errors.ErrNotReady
	}

	comparand, ok, err := c.comparand()
	if err != nil {
		return false, err
	}

	if !ok {
		return false, errors.ErrNotReady
	}

	switch c.op {
	case OpCrossOver, OpCrossUnder:
		return c.evaluateCross(current.Unwrap(), data)
	default:
		return current.Unwrap().Compare(comparand, c.op.cmp(), data)
	}
}

// comparand resolves the right-hand operand: the literal value, or the other
// indicator's current output.
func (c *Comparison) comparand() (types.Output, bool, error) {
	if c.hasValue {
		return c.value, true, nil
	}

	if c.other == nil {
		return types.Output{}, false, errors.New(errors.ErrCodeMissingComparand,
			"comparison has neither a value nor a second indicator")
	}

	out := c.other.Current()
	if out.IsNone() {
		return types.Output{}, false, nil
	}

	return out.Unwrap(), true, nil
}

// evaluateCross holds only on the observation where the relation flips. The
// first ready observation has no previous output and cannot cross.
func (c *Comparison) evaluateCross(current types.Output, data *types.MarketData) (bool, error) {
	prev := c.indicator.Previous()
	if prev.IsNone() {
		return false, nil
	}

	prevComparand := c.value

	curComparand := c.value
	if !c.hasValue {
		prevOther, curOther := c.other.Previous(), c.other.Current()
		if prevOther.IsNone() || curOther.IsNone() {
			return false, nil
		}

		prevComparand, curComparand = prevOther.Unwrap(), curOther.Unwrap()
	}

	before, err := prev.Unwrap().Compare(prevComparand, c.op.inverse(), data)
	if err != nil {
		return false, err
	}

	if !before {
		return false, nil
	}

	return current.Compare(curComparand, c.op.cmp(), data)
}

// Period returns the longest warm-up among the referenced indicators.
func (c *Comparison) Period() int {
	period := c.indicator.Period()
	if c.other != nil && c.other.Period() > period {
		period = c.other.Period()
	}

	return period
}

// Reset restores every referenced indicator to its freshly constructed
// state.
func (c *Comparison) Reset() {
	c.indicator.Reset()

	if c.other != nil {
		c.other.Reset()
	}
}

// Document renders the leaf as a type-tagged record.
func (c *Comparison) Document() map[string]any {
	doc := map[string]any{
		"type":      string(c.op),
		"indicator": c.indicator.Document(),
	}

	if c.hasValue {
		doc["value"] = c.value.Document()
	} else {
		doc["other"] = c.other.Document()
	}

	return doc
}

func (c *Comparison) validate(path string) error {
	if !c.op.valid() {
		return errors.Newf(errors.ErrCodeUnknownCondition, "%s: unknown comparison operator %q", path, c.op)
	}

	if c.indicator == nil {
		return errors.Newf(errors.ErrCodeMissingIndicator, "%s: comparison has no indicator", path)
	}

	if c.hasValue && c.other != nil {
		return errors.Newf(errors.ErrCodeAmbiguousComparand,
			"%s: comparison has both a value and a second indicator", path)
	}

	if !c.hasValue && c.other == nil {
		return errors.Newf(errors.ErrCodeMissingComparand,
			"%s: comparison has neither a value nor a second indicator", path)
	}

	return nil
}

// And is the conjunction of its sub-conditions, evaluated left to right
// with short-circuiting.
type And struct {
	conditions []Condition
}

// NewAnd builds a conjunction.
func NewAnd(conditions ...Condition) *And {
	return &And{conditions: conditions}
}

// Update advances every sub-condition.
func (a *And) Update(data types.MarketData) error {
	for _, c := range a.conditions {
		if err := c.Update(data); err != nil {
			return err
		}
	}

	return nil
}

// Evaluate short-circuits on the first false sub-condition.
func (a *And) Evaluate(data *types.MarketData) (bool, error) {
	for _, c := range a.conditions {
		held, err := c.Evaluate(data)
		if err != nil {
			return false, err
		}

		if !held {
			return false, nil
		}
	}

	return true, nil
}

// Period returns the longest warm-up among the sub-conditions.
func (a *And) Period() int {
	var period int
	for _, c := range a.conditions {
		if p := c.Period(); p > period {
			period = p
		}
	}

	return period
}

// Reset restores every sub-condition.
func (a *And) Reset() {
	for _, c := range a.conditions {
		c.Reset()
	}
}

// Document renders the conjunction as a type-tagged record.
func (a *And) Document() map[string]any {
	return map[string]any{
		"type":       "and",
		"conditions": conditionDocs(a.conditions),
	}
}

func (a *And) validate(path string) error {
	return validateConditionList(path, "and", a.conditions)
}

// Or is the disjunction of its sub-conditions, evaluated left to right with
// short-circuiting.
type Or struct {
	conditions []Condition
}

// NewOr builds a disjunction.
func NewOr(conditions ...Condition) *Or {
	return &Or{conditions: conditions}
}

// Update advances every sub-condition.
func (o *Or) Update(data types.MarketData) error {
	for _, c := range o.conditions {
		if err := c.Update(data); err != nil {
			return err
		}
	}

	return nil
}

// Evaluate short-circuits on the first true sub-condition.
func (o *Or) Evaluate(data *types.MarketData) (bool, error) {
	for _, c := range o.conditions {
		held, err := c.Evaluate(data)
		if err != nil {
			return false, err
		}

		if held {
			return true, nil
		}
	}

	return false, nil
}

// Period returns the longest warm-up among the sub-conditions.
func (o *Or) Period() int {
	var period int
	for _, c := range o.conditions {
		if p := c.Period(); p > period {
			period = p
		}
	}

	return period
}

// Reset restores every sub-condition.
func (o *Or) Reset() {
	for _, c := range o.conditions {
		c.Reset()
	}
}

// Document renders the disjunction as a type-tagged record.
func (o *Or) Document() map[string]any {
	return map[string]any{
		"type":       "or",
		"conditions": conditionDocs(o.conditions),
	}
}

func (o *Or) validate(path string) error {
	return validateConditionList(path, "or", o.conditions)
}

// Not negates its sub-condition.
type Not struct {
	condition Condition
}

// NewNot builds a negation.
func NewNot(condition Condition) *Not {
	return &Not{condition: condition}
}

// Update advances the sub-condition.
func (n *Not) Update(data types.MarketData) error {
	return n.condition.Update(data)
}

// Evaluate negates the sub-condition's result.
func (n *Not) Evaluate(data *types.MarketData) (bool, error) {
	held, err := n.condition.Evaluate(data)
	if err != nil {
		return false, err
	}

	return !held, nil
}

// Period returns the sub-condition's warm-up.
func (n *Not) Period() int {
	return n.condition.Period()
}

// Reset restores the sub-condition.
func (n *Not) Reset() {
	n.condition.Reset()
}

// Document renders the negation as a type-tagged record.
func (n *Not) Document() map[string]any {
	return map[string]any{
		"type":      "not",
		"condition": n.condition.Document(),
	}
}

func (n *Not) validate(path string) error {
	if n.condition == nil {
		return errors.Newf(errors.ErrCodeUnknownCondition, "%s: negation has no sub-condition", path)
	}

	return n.condition.validate(path + ".not")
}

func conditionDocs(conditions []Condition) []any {
	docs := make([]any, len(conditions))
	for i, c := range conditions {
		docs[i] = c.Document()
	}

	return docs
}

func validateConditionList(path, kind string, conditions []Condition) error {
	if len(conditions) == 0 {
		return errors.Newf(errors.ErrCodeUnknownCondition, "%s: %s has no sub-conditions", path, kind)
	}

	for i, c := range conditions {
		if c == nil {
			return errors.Newf(errors.ErrCodeUnknownCondition, "%s.%s[%d]: sub-condition is nil", path, kind, i)
		}

		if err := c.validate(fmt.Sprintf("%s.%s[%d]", path, kind, i)); err != nil {
			return err
		}
	}

	return nil
}
