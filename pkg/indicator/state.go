package indicator

import (
	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/types"
)

// State wraps an indicator with its latest and previous outputs. Conditions
// read cached outputs instead of advancing the indicator themselves, so one
// observation advances every indicator exactly once no matter how often the
// tree is walked. The previous output is what makes crossover detection
// possible without re-running the indicator.
type State struct {
	inner       Indicator
	current     optional.Option[types.Output]
	previous    optional.Option[types.Output]
	invalidated bool
}

// NewState wraps a freshly constructed indicator.
func NewState(inner Indicator) *State {
	return &State{inner: inner}
}

// Update advances the indicator by one observation, shifting the current
// output into the previous slot. An invalidated state refuses updates until
// it is reset.
func (s *State) Update(data types.MarketData) error {
	if s.invalidated {
		return errors.Newf(errors.ErrCodeIndicatorInvalidated, "%s has been invalidated", s.inner)
	}

	out, err := s.inner.Next(data)
	if err != nil {
		return err
	}

	s.previous = s.current
	s.current = out

	return nil
}

// Current returns the output of the most recent observation, or None while
// warming up.
func (s *State) Current() optional.Option[types.Output] {
	return s.current
}

// Previous returns the output preceding the current one.
func (s *State) Previous() optional.Option[types.Output] {
	return s.previous
}

// Invalidate discards the cached outputs and poisons the state: further
// updates fail with ErrCodeIndicatorInvalidated until Reset.
func (s *State) Invalidate() {
	s.current = optional.None[types.Output]()
	s.previous = optional.None[types.Output]()
	s.invalidated = true
}

// Reset restores the wrapped indicator and the caches to their freshly
// constructed state, clearing any invalidation.
func (s *State) Reset() {
	s.inner.Reset()
	s.current = optional.None[types.Output]()
	s.previous = optional.None[types.Output]()
	s.invalidated = false
}

// Period returns the wrapped indicator's warm-up length.
func (s *State) Period() int {
	return s.inner.Period()
}

// Shape returns the wrapped indicator's output shape.
func (s *State) Shape() types.OutputShape {
	return s.inner.Shape()
}

// Type returns the wrapped indicator's serialization tag.
func (s *State) Type() types.IndicatorType {
	return s.inner.Type()
}

// Document renders the wrapped indicator's construction parameters. Cached
// outputs are runtime state and never serialized.
func (s *State) Document() map[string]any {
	return s.inner.Document()
}

func (s *State) String() string {
	return s.inner.String()
}

// StateFromDocument rebuilds a wrapped indicator from its record form.
func StateFromDocument(doc map[string]any) (*State, error) {
	inner, err := FromDocument(doc)
	if err != nil {
		return nil, err
	}

	return NewState(inner), nil
}
