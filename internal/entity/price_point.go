package entity

import "time"

// PricePoint is one trading day of OHLCV data.
type PricePoint struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Ticker    string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_price_points_ticker_date" json:"ticker"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:idx_price_points_ticker_date" json:"date"`
	Close     float64   `gorm:"not null" json:"close"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Open      float64   `json:"open"`
	Volume    int64     `json:"volume"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the PricePoint model.
func (PricePoint) TableName() string {
	return "price_points"
}
