package types

// IndicatorType is the stable textual identity of an indicator variant, used
// as the tagged-union discriminator in every serialization format.
type IndicatorType string

const (
	IndicatorTypeNone                  IndicatorType = "none"
	IndicatorTypeSMA                   IndicatorType = "sma"
	IndicatorTypeEMA                   IndicatorType = "ema"
	IndicatorTypeSMMA                  IndicatorType = "smma"
	IndicatorTypeRSI                   IndicatorType = "rsi"
	IndicatorTypeMACD                  IndicatorType = "macd"
	IndicatorTypeTrueRange             IndicatorType = "tr"
	IndicatorTypeATR                   IndicatorType = "atr"
	IndicatorTypeBollingerBands        IndicatorType = "bollinger_bands"
	IndicatorTypeKeltnerChannel        IndicatorType = "keltner_channel"
	IndicatorTypeSuperTrend            IndicatorType = "super_trend"
	IndicatorTypeStochasticOscillator  IndicatorType = "stochastic_oscillator"
	IndicatorTypeWilliamsR             IndicatorType = "williams_r"
	IndicatorTypeAwesomeOscillator     IndicatorType = "ao"
	IndicatorTypeOnBalanceVolume       IndicatorType = "obv"
	IndicatorTypeStandardDeviation     IndicatorType = "standard_deviation"
	IndicatorTypeMeanAbsoluteError     IndicatorType = "mean_absolute_error"
	IndicatorTypeAlligator             IndicatorType = "alligator"
)
