package indicator

import (
	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/types"
)

// FromDocument rebuilds an indicator from its type-tagged record form. Only
// construction parameters are read; the indicator starts with fresh rolling
// state.
func FromDocument(doc map[string]any) (Indicator, error) {
	tag, err := types.DocumentTag(doc)
	if err != nil {
		return nil, err
	}

	switch types.IndicatorType(tag) {
	case types.IndicatorTypeNone:
		return NewNone(), nil
	case types.IndicatorTypeSMA:
		period, err := types.DocumentInt(doc, "period")
		if err != nil {
			return nil, err
		}

		return NewSMA(period)
	case types.IndicatorTypeEMA:
		period, err := types.DocumentInt(doc, "period")
		if err != nil {
			return nil, err
		}

		return NewEMA(period)
	case types.IndicatorTypeSMMA:
		period, err := types.DocumentInt(doc, "period")
		if err != nil {
			return nil, err
		}

		return NewSMMA(period)
	case types.IndicatorTypeRSI:
		period, err := types.DocumentInt(doc, "period")
		if err != nil {
			return nil, err
		}

		return NewRSI(period)
	case types.IndicatorTypeMACD:
		fast, err := types.DocumentInt(doc, "fast_period")
		if err != nil {
			return nil, err
		}

		slow, err := types.DocumentInt(doc, "slow_period")
		if err != nil {
			return nil, err
		}

		signal, err := types.DocumentInt(doc, "signal_period")
		if err != nil {
			return nil, err
		}

		return NewMACD(fast, slow, signal)
	case types.IndicatorTypeTrueRange:
		return NewTrueRange(), nil
	case types.IndicatorTypeATR:
		period, err := types.DocumentInt(doc, "period")
		if err != nil {
			return nil, err
		}

		return NewATR(period)
	case types.IndicatorTypeBollingerBands:
		period, err := types.DocumentInt(doc, "period")
		if err != nil {
			return nil, err
		}

		multiplier, err := types.DocumentFloat(doc, "multiplier")
		if err != nil {
			return nil, err
		}

		return NewBollingerBands(period, multiplier)
	case types.IndicatorTypeKeltnerChannel:
		period, err := types.DocumentInt(doc, "period")
		if err != nil {
			return nil, err
		}

		multiplier, err := types.DocumentFloat(doc, "multiplier")
		if err != nil {
			return nil, err
		}

		return NewKeltnerChannel(period, multiplier)
	case types.IndicatorTypeSuperTrend:
		period, err := types.DocumentInt(doc, "period")
		if err != nil {
			return nil, err
		}

		multiplier, err := types.DocumentFloat(doc, "multiplier")
		if err != nil {
			return nil, err
		}

		return NewSuperTrend(period, multiplier)
	case types.IndicatorTypeStochasticOscillator:
		period, err := types.DocumentInt(doc, "period")
		if err != nil {
			return nil, err
		}

		smoothing, err := types.DocumentInt(doc, "smoothing_period")
		if err != nil {
			return nil, err
		}

		return NewStochasticOscillator(period, smoothing)
	case types.IndicatorTypeWilliamsR:
		period, err := types.DocumentInt(doc, "period")
		if err != nil {
			return nil, err
		}

		return NewWilliamsR(period)
	case types.IndicatorTypeAwesomeOscillator:
		short, err := types.DocumentInt(doc, "short_period")
		if err != nil {
			return nil, err
		}

		long, err := types.DocumentInt(doc, "long_period")
		if err != nil {
			return nil, err
		}

		return NewAwesomeOscillator(short, long)
	case types.IndicatorTypeOnBalanceVolume:
		return NewOnBalanceVolume(), nil
	case types.IndicatorTypeStandardDeviation:
		period, err := types.DocumentInt(doc, "period")
		if err != nil {
			return nil, err
		}

		return NewStandardDeviation(period)
	case types.IndicatorTypeMeanAbsoluteError:
		period, err := types.DocumentInt(doc, "period")
		if err != nil {
			return nil, err
		}

		return NewMeanAbsoluteError(period)
	case types.IndicatorTypeAlligator:
		params := make([]int, 0, 6)

		for _, key := range []string{"jaw_period", "jaw_shift", "teeth_period", "teeth_shift", "lips_period", "lips_shift"} {
			v, err := types.DocumentInt(doc, key)
			if err != nil {
				return nil, err
			}

			params = append(params, v)
		}

		return NewAlligator(params[0], params[1], params[2], params[3], params[4], params[5])
	default:
		return nil, errors.Newf(errors.ErrCodeUnknownIndicator, "unknown indicator type %q", tag)
	}
}
