// Package indicator implements streaming technical indicators. Every
// indicator is an incremental transducer: it consumes one observation at a
// time, keeps a fixed-size rolling state bounded by its period, and produces
// an output only once its warm-up length has been satisfied.
package indicator

import (
	"fmt"

	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/types"
)

// Indicator is the capability set shared by every variant.
//
// Next consumes one observation and returns the indicator's value, or None
// while fewer than Period observations have been consumed. Reset restores
// the exact state of a freshly constructed instance with the same
// parameters. Indicators never hold references to one another; composition
// happens at the condition layer.
type Indicator interface {
	fmt.Stringer

	Next(data types.MarketData) (optional.Option[types.Output], error)
	Reset()
	// Period is the warm-up length: the minimum observation count before
	// the output is defined.
	Period() int
	Shape() types.OutputShape
	Type() types.IndicatorType
	// Document renders the indicator's construction parameters as a
	// type-tagged record. Live rolling state is never serialized; a decoded
	// indicator starts fresh.
	Document() map[string]any
}

func notReady() (optional.Option[types.Output], error) {
	return optional.None[types.Output](), nil
}

func ready(out types.Output) (optional.Option[types.Output], error) {
	return optional.Some(out), nil
}

func validatePeriod(period int) error {
	if period < 1 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "period must be at least 1, got %d", period)
	}

	return nil
}
