package domain

import (
	"time"

	"github.com/velodata/tt-scraper/internal/util"
)

// RaceDateLayout is the date format used on race pages, e.g. "21 July 2024".
const RaceDateLayout = "2 January 2006"

// Race is one time-trial race page. Title through WinnerSpeedKmh are always
// present on a valid page; the Numeric fields are frequently blank at the
// source and stay none in that case. WinnerSpeedKmh is always derived from
// distance and winner time, never scraped.
type Race struct {
	URL              string
	Title            string
	Date             string // source format, see RaceDateLayout
	Departure        string
	Arrival          string
	Class            string
	DistanceKm       float64
	VerticalMeters   util.Numeric
	StartlistQuality util.Numeric
	ProfileScore     util.Numeric
	Temperature      util.Numeric
	RaceRanking      util.Numeric
	WinnerTimeSec    int
	WinnerSpeedKmh   float64
	ProfileImageURL  string
}

// ParsedDate interprets the source-format date field.
func (r Race) ParsedDate() (time.Time, error) {
	return time.Parse(RaceDateLayout, r.Date)
}
