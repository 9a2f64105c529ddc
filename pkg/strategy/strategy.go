package strategy

import (
	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/types"
)

// Strategy drives a decision tree over a stream of observations. It gates
// evaluation behind the longest indicator warm-up in the tree: until enough
// observations have been consumed, Evaluate advances the indicators and
// returns None. None is "wait", distinct from an explicit Hold.
type Strategy struct {
	root     Node
	observed int
}

// New validates the tree structurally and wraps it in a strategy. A broken
// tree is rejected here, never left to fail mid-stream.
func New(root Node) (*Strategy, error) {
	if err := Validate(root); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidStrategy, "invalid strategy tree", err)
	}

	return &Strategy{root: root}, nil
}

// Validate walks a tree structurally without evaluating any indicator,
// reporting the path of the first offending node.
func Validate(root Node) error {
	if root == nil {
		return errors.New(errors.ErrCodeUnknownNode, "root: strategy tree is empty")
	}

	return root.validate("root")
}

// Evaluate consumes one observation. Every indicator in the tree advances
// exactly once; the tree is then walked over the cached outputs. The result
// is None while warming up, or the resolved action.
func (s *Strategy) Evaluate(data types.MarketData) (optional.Option[types.Action], error) {
	if err := s.root.Update(data); err != nil {
		return optional.None[types.Action](), err
	}

	s.observed++

	if s.observed < s.Period() {
		return optional.None[types.Action](), nil
	}

	action, err := s.root.Evaluate(&data)
	if err != nil {
		// A straggling indicator (a crossover pair, say) may still be
		// warming even after the longest period has passed.
		if errors.IsNotReady(err) {
			return optional.None[types.Action](), nil
		}

		return optional.None[types.Action](), err
	}

	return optional.Some(action), nil
}

// Period returns the number of observations the strategy needs before its
// first verdict.
func (s *Strategy) Period() int {
	return s.root.Period()
}

// Reset restores the strategy and every indicator in the tree to the
// freshly constructed state.
func (s *Strategy) Reset() {
	s.observed = 0
	s.root.Reset()
}

// Root exposes the underlying tree, mainly for inspection and validation
// tooling.
func (s *Strategy) Root() Node {
	return s.root
}

// Document renders the strategy as its root node's record. Warm-up progress
// is runtime state and never serialized.
func (s *Strategy) Document() map[string]any {
	return s.root.Document()
}

// FromDocument rebuilds a validated strategy from its record form.
func FromDocument(doc map[string]any) (*Strategy, error) {
	root, err := NodeFromDocument(doc)
	if err != nil {
		return nil, err
	}

	return New(root)
}
