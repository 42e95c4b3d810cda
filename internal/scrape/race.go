package scrape

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/velodata/tt-scraper/internal/domain"
	"github.com/velodata/tt-scraper/internal/fetch"
	"github.com/velodata/tt-scraper/internal/util"
	scrapeerrors "github.com/velodata/tt-scraper/pkg/errors"
)

// raceSelectors locates the pieces of a race page: the title, the key/value
// sidebar, the winner's row in the result table and the profile image.
var raceSelectors = struct {
	title      string
	infoBox    string
	infoValues string
	winnerTime string
	profileImg string
}{
	title:      "head > title",
	infoBox:    "div.borderbox.w30.right.mb_w100",
	infoValues: "ul.list.keyvalueList.lineh16.fs12 li > div.value",
	winnerTime: "#resultsCont td.time.ar > span",
	profileImg: "div.mt10 img",
}

// Positions of each field within the sidebar's value list.
const (
	raceValueDate           = 0
	raceValueClass          = 3
	raceValueDistance       = 5
	raceValueProfileScore   = 10
	raceValueVerticalMeters = 11
	raceValueDeparture      = 12
	raceValueArrival        = 13
	raceValueRanking        = 14
	raceValueStartlist      = 15
	raceValueTemperature    = 17
	raceValueCount          = 18
)

// RaceScraper extracts race pages. Title, date, locations, class, distance
// and winner time are required; the remaining fields are routinely blank at
// the source and stay none.
type RaceScraper struct {
	fetcher *fetch.Client
	baseURL string
	logger  *zap.Logger
}

func NewRaceScraper(fetcher *fetch.Client, baseURL string, logger *zap.Logger) *RaceScraper {
	return &RaceScraper{
		fetcher: fetcher,
		baseURL: baseURL,
		logger:  logger,
	}
}

func (s *RaceScraper) FetchRace(ctx context.Context, url string) (*domain.Race, error) {
	doc, err := s.fetcher.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	return s.Parse(url, doc)
}

func (s *RaceScraper) Parse(url string, doc *goquery.Document) (*domain.Race, error) {
	title := strings.TrimSpace(doc.Find(raceSelectors.title).First().Text())
	if title == "" {
		return nil, newMissing(url, "title")
	}
	title = strings.ReplaceAll(title, " results", "")

	box := doc.Find(raceSelectors.infoBox).First()
	if box.Length() == 0 {
		return nil, newMissing(url, "info_box")
	}

	var values []string
	box.Find(raceSelectors.infoValues).Each(func(_ int, v *goquery.Selection) {
		values = append(values, strings.TrimSpace(v.Text()))
	})
	if len(values) < raceValueCount {
		return nil, scrapeerrors.NewExtractionError(
			fmt.Sprintf("expected at least %d info values, got %d", raceValueCount, len(values)),
			url, "info_values", nil)
	}

	distanceFields := strings.Fields(values[raceValueDistance])
	if len(distanceFields) == 0 {
		return nil, newMissing(url, "distance")
	}
	distance, ok := util.ToNumeric(distanceFields[0]).Float()
	if !ok {
		return nil, scrapeerrors.NewExtractionError("distance is not a number", url, "distance", nil)
	}

	winnerTimeText, err := requiredText(doc.Selection, raceSelectors.winnerTime, url, "winner_time")
	if err != nil {
		return nil, err
	}
	winnerTime, err := parseWinnerTime(winnerTimeText)
	if err != nil {
		return nil, scrapeerrors.NewExtractionError("invalid winner time", url, "winner_time", err)
	}
	if winnerTime <= 0 {
		return nil, scrapeerrors.NewExtractionError("winner time is zero", url, "winner_time", nil)
	}

	race := &domain.Race{
		URL:              url,
		Title:            title,
		Date:             values[raceValueDate],
		Departure:        values[raceValueDeparture],
		Arrival:          values[raceValueArrival],
		Class:            values[raceValueClass],
		DistanceKm:       distance,
		VerticalMeters:   util.ToNumeric(values[raceValueVerticalMeters]),
		StartlistQuality: util.ParseStartlistQuality(values[raceValueStartlist]),
		ProfileScore:     util.ToNumeric(values[raceValueProfileScore]),
		Temperature:      parseTemperature(values[raceValueTemperature]),
		RaceRanking:      util.ToNumeric(values[raceValueRanking]),
		WinnerTimeSec:    winnerTime,
		WinnerSpeedKmh:   roundSpeed(3600 * distance / float64(winnerTime)),
	}

	if img := box.Find(raceSelectors.profileImg).First(); img.Length() > 0 {
		if src, ok := img.Attr("src"); ok {
			race.ProfileImageURL = s.baseURL + src
		}
	}

	s.logger.Debug("parsed race",
		zap.String("title", race.Title),
		zap.String("url", race.URL))

	return race, nil
}

// parseWinnerTime handles both time formats the result tables use: colon
// separated ("45:24", "1:02:03") and the legacy dot form where hundredths
// follow a comma ("4.23,5").
func parseWinnerTime(s string) (int, error) {
	if strings.Contains(s, ":") {
		return util.ParseDuration(s, ":")
	}
	if i := strings.Index(s, ","); i >= 0 {
		s = s[:i]
	}
	return util.ParseDuration(s, ".")
}

// parseTemperature reads the leading number of a value like "28 °C".
func parseTemperature(s string) util.Numeric {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return util.NoneNumeric()
	}
	return util.ToNumeric(fields[0])
}

// roundSpeed keeps the derived average speed at 3 decimals.
func roundSpeed(v float64) float64 {
	return math.Round(v*1000) / 1000
}
