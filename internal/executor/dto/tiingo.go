package dto

import "time"

// TiingoPrice is one row of GET /tiingo/daily/{ticker}/prices.
type TiingoPrice struct {
	Date        time.Time `json:"date"`
	Open        float64   `json:"open"`
	High        float64   `json:"high"`
	Low         float64   `json:"low"`
	Close       float64   `json:"close"`
	Volume      int64     `json:"volume"`
	AdjOpen     float64   `json:"adjOpen"`
	AdjHigh     float64   `json:"adjHigh"`
	AdjLow      float64   `json:"adjLow"`
	AdjClose    float64   `json:"adjClose"`
	AdjVolume   int64     `json:"adjVolume"`
	DivCash     float64   `json:"divCash"`
	SplitFactor float64   `json:"splitFactor"`
}

// TiingoError is returned by Tiingo with a non-2xx status.
type TiingoError struct {
	Detail string `json:"detail"`
}
