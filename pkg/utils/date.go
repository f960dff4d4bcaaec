package utils

import (
	"log"
	"time"
)

// DateLayout is the calendar date format used for tickers' trading days.
const DateLayout = "2006-01-02"

// MarketLocation returns the exchange time zone used to decide which calendar day an article or price belongs to.
func MarketLocation() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		log.Println("Failed to load America/New_York location, falling back to UTC", err)
		return time.UTC
	}
	return loc
}

func TimeNowMarket() time.Time {
	return time.Now().In(MarketLocation())
}

// DateOnly truncates t to midnight UTC of its calendar day in t's own location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MarketDate returns the calendar day of t as seen from the exchange.
func MarketDate(t time.Time) time.Time {
	return DateOnly(t.In(MarketLocation()))
}

// Today returns the current exchange calendar day.
func Today() time.Time {
	return DateOnly(TimeNowMarket())
}

func AddDays(date time.Time, days int) time.Time {
	return date.AddDate(0, 0, days)
}

func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// PrettyDate renders t in exchange time for human readers.
func PrettyDate(t time.Time) string {
	return t.In(MarketLocation()).Format("Mon, 02 Jan 2006 15:04 MST")
}
