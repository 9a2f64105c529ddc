package types

import "math"

// Candle represents one OHLCV market observation. Values are immutable once
// constructed; transducers only borrow a candle for the duration of a single
// update call.
type Candle struct {
	Open   float64 `yaml:"open" json:"open" csv:"open"`
	High   float64 `yaml:"high" json:"high" csv:"high"`
	Low    float64 `yaml:"low" json:"low" csv:"low"`
	Close  float64 `yaml:"close" json:"close" csv:"close"`
	Volume float64 `yaml:"volume" json:"volume" csv:"volume"`
}

// TypicalPrice returns (high + low + close) / 3.
func (c Candle) TypicalPrice() float64 {
	return (c.High + c.Low + c.Close) / 3.0
}

// MedianPrice returns (high + low) / 2.
func (c Candle) MedianPrice() float64 {
	return (c.High + c.Low) / 2.0
}

type marketDataKind int

const (
	marketDataCandle marketDataKind = iota
	marketDataPrice
)

// MarketData is the input currency of every indicator: either a full candle
// or a bare price for indicators fed a raw numeric series. A bare price
// answers every price accessor with itself and reports NaN volume.
type MarketData struct {
	kind   marketDataKind
	candle Candle
	price  float64
}

// FromCandle wraps a candle as market data.
func FromCandle(c Candle) MarketData {
	return MarketData{kind: marketDataCandle, candle: c}
}

// FromPrice wraps a bare price as market data.
func FromPrice(p float64) MarketData {
	return MarketData{kind: marketDataPrice, price: p}
}

// IsCandle reports whether the observation carries full OHLCV data.
func (m MarketData) IsCandle() bool {
	return m.kind == marketDataCandle
}

// Open returns the opening price of the observation.
func (m MarketData) Open() float64 {
	if m.kind == marketDataCandle {
		return m.candle.Open
	}

	return m.price
}

// High returns the highest price of the observation.
func (m MarketData) High() float64 {
	if m.kind == marketDataCandle {
		return m.candle.High
	}

	return m.price
}

// Low returns the lowest price of the observation.
func (m MarketData) Low() float64 {
	if m.kind == marketDataCandle {
		return m.candle.Low
	}

	return m.price
}

// Close returns the closing price of the observation.
func (m MarketData) Close() float64 {
	if m.kind == marketDataCandle {
		return m.candle.Close
	}

	return m.price
}

// Volume returns the traded volume, or NaN for a bare price.
func (m MarketData) Volume() float64 {
	if m.kind == marketDataCandle {
		return m.candle.Volume
	}

	return math.NaN()
}

// TypicalPrice returns (high + low + close) / 3, or the bare price itself.
func (m MarketData) TypicalPrice() float64 {
	if m.kind == marketDataCandle {
		return m.candle.TypicalPrice()
	}

	return m.price
}

// MedianPrice returns (high + low) / 2, or the bare price itself.
func (m MarketData) MedianPrice() float64 {
	if m.kind == marketDataCandle {
		return m.candle.MedianPrice()
	}

	return m.price
}
