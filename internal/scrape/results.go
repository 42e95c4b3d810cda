package scrape

import (
	"context"
	"strconv"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/velodata/tt-scraper/internal/domain"
	"github.com/velodata/tt-scraper/internal/fetch"
	"github.com/velodata/tt-scraper/internal/util"
	scrapeerrors "github.com/velodata/tt-scraper/pkg/errors"
)

// resultSelectors locates the cells of each row on a rider's TT result
// history page.
var resultSelectors = struct {
	rows     string
	date     string
	raceLink string
	place    string
	class    string
	timeLost string
}{
	rows:     "body > div.wrapper > div.content > div.page-content > div > div.mt10 > table > tbody > tr",
	date:     "td:nth-child(1)",
	raceLink: "td:nth-child(2) > a",
	place:    "td:nth-child(3)",
	class:    "td:nth-child(4)",
	timeLost: "td:nth-child(6)",
}

// allowedClasses is the set of race tiers whose results are eligible.
var allowedClasses = map[string]struct{}{
	"2.UWT":    {},
	"2.Pro":    {},
	"2.1":      {},
	"WC":       {},
	"NC":       {},
	"CC":       {},
	"Olympics": {},
}

const (
	resultsPathSuffix = "/results/last-tt-results"
	resultDateLayout  = "2006-01-02"
)

// ResultScraper extracts a rider's recent time-trial results. Rows arrive
// newest first, so the year cutoff short-circuits the whole scan instead of
// skipping individual rows.
type ResultScraper struct {
	fetcher *fetch.Client
	baseURL string
	minYear int
	logger  *zap.Logger
}

func NewResultScraper(fetcher *fetch.Client, baseURL string, minYear int, logger *zap.Logger) *ResultScraper {
	return &ResultScraper{
		fetcher: fetcher,
		baseURL: baseURL,
		minYear: minYear,
		logger:  logger,
	}
}

func (s *ResultScraper) FetchResults(ctx context.Context, riderURL string) ([]domain.Result, error) {
	doc, err := s.fetcher.Get(ctx, riderURL+resultsPathSuffix)
	if err != nil {
		return nil, err
	}
	return s.Parse(riderURL, doc)
}

// Parse walks the result rows in document order. Filtered rows (wrong
// class, non-numeric or out-of-range place, blocklisted race) are silent
// exclusions; a row with a missing cell fails the whole call.
func (s *ResultScraper) Parse(riderURL string, doc *goquery.Document) ([]domain.Result, error) {
	var results []domain.Result
	var parseErr error

	doc.Find(resultSelectors.rows).EachWithBreak(func(_ int, row *goquery.Selection) bool {
		dateText, err := requiredText(row, resultSelectors.date, riderURL, "date")
		if err != nil {
			parseErr = err
			return false
		}
		date, err := time.Parse(resultDateLayout, dateText)
		if err != nil {
			parseErr = scrapeerrors.NewExtractionError("invalid result date", riderURL, "date", err)
			return false
		}
		if date.Year() < s.minYear {
			// rows are reverse-chronological; nothing older qualifies
			return false
		}

		class, err := requiredText(row, resultSelectors.class, riderURL, "class")
		if err != nil {
			parseErr = err
			return false
		}
		if _, ok := allowedClasses[class]; !ok {
			return true
		}

		placeText, err := requiredText(row, resultSelectors.place, riderURL, "place")
		if err != nil {
			parseErr = err
			return false
		}
		place, ok := parsePlace(placeText)
		if !ok {
			// "DNF", "DNS" and friends
			return true
		}
		if place > 20 {
			return true
		}

		lostText, err := requiredText(row, resultSelectors.timeLost, riderURL, "seconds_lost")
		if err != nil {
			parseErr = err
			return false
		}
		secondsLost, err := util.ParseDuration(lostText, ":")
		if err != nil {
			parseErr = scrapeerrors.NewExtractionError("invalid time lost", riderURL, "seconds_lost", err)
			return false
		}

		raceHref, err := requiredAttr(row, resultSelectors.raceLink, "href", riderURL, "race_url")
		if err != nil {
			parseErr = err
			return false
		}
		raceURL := s.baseURL + raceHref
		if IsBlockedRace(raceURL) {
			return true
		}

		results = append(results, domain.Result{
			RiderURL:    riderURL,
			Place:       place,
			Points:      domain.PointsForPlace(place),
			SecondsLost: secondsLost,
			RaceURL:     raceURL,
		})
		return true
	})

	if parseErr != nil {
		return nil, parseErr
	}

	s.logger.Debug("parsed results",
		zap.String("rider_url", riderURL),
		zap.Int("rows", len(results)))

	return results, nil
}

// parsePlace accepts only a plain non-negative integer string.
func parsePlace(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}
