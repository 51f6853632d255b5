package models

import "time"

// Requests for analysis HTTP endpoints. Defined in domain for consistency and reuse.

type BarInput struct {
	Timestamp time.Time `json:"timestamp" validate:"required"`
	Open      float64   `json:"open" validate:"gt=0"`
	High      float64   `json:"high" validate:"gt=0"`
	Low       float64   `json:"low" validate:"gt=0"`
	Close     float64   `json:"close" validate:"gt=0"`
	Volume    int64     `json:"volume" validate:"gte=0"`
}

func (b BarInput) ToBar() PriceBar {
	return PriceBar{
		Timestamp: b.Timestamp,
		Open:      b.Open,
		High:      b.High,
		Low:       b.Low,
		Close:     b.Close,
		Volume:    b.Volume,
	}
}

type AnalyzeSeriesRequest struct {
	Symbol string     `json:"symbol" default:"UNKNOWN" validate:"max=32"`
	Bars   []BarInput `json:"bars" validate:"required,min=1,max=10000,dive"`
}

type AnalyzeSymbolRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required,max=32"`
	N      int    `query:"n" json:"n" default:"300" validate:"gte=1,lte=5000"`
	TF     string `query:"tf" json:"tf" default:"1d" validate:"oneof=1h 1d"`
}

type BarsRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required,max=32"`
	From   string `query:"from" json:"from"`
	To     string `query:"to" json:"to"`
	TF     string `query:"tf" json:"tf" default:"1d" validate:"oneof=1h 1d"`
	Limit  int    `query:"limit" json:"limit" default:"1000" validate:"gte=1,lte=50000"`
}

// BarView is the transport shape of a PriceBar.
type BarView struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    int64     `json:"volume"`
}

func NewBarView(b PriceBar) BarView {
	return BarView{Timestamp: b.Timestamp, Open: b.Open, High: b.High, Low: b.Low, Close: b.Close, Volume: b.Volume}
}

type PutBarsRequest struct {
	Symbol string     `json:"symbol" validate:"required,max=32"`
	TF     string     `json:"tf" default:"1d" validate:"oneof=1h 1d"`
	Bars   []BarInput `json:"bars" validate:"required,min=1,max=10000,dive"`
}

// ToSeries converts validated bar inputs into a series.
func ToSeries(in []BarInput) PriceSeries {
	out := make(PriceSeries, len(in))
	for i, b := range in {
		out[i] = b.ToBar()
	}
	return out
}
