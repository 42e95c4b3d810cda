package scrape

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/velodata/tt-scraper/internal/domain"
	"github.com/velodata/tt-scraper/internal/fetch"
)

// rankingSelectors locates the rows of the yearly time-trial ranking table.
var rankingSelectors = struct {
	rows      string
	riderLink string
}{
	rows:      "body > div.wrapper > div.content > div.page-content > div > div:nth-child(4) > table > tbody > tr",
	riderLink: "td:nth-child(4) > a",
}

// rankingURLFormat queries the TT specialty ranking as it stood at the end
// of the season before the given one.
const rankingURLFormat = "%srankings.php?date=%d-12-31&nation=&age=&zage=&page=smallerorequal&team=&offset=0&filter=Filter&p=me&s=time-trial"

// SpecialistScraper discovers the candidate rider set from the per-year TT
// rankings.
type SpecialistScraper struct {
	fetcher   *fetch.Client
	baseURL   string
	startYear int
	endYear   int
	topN      int
	logger    *zap.Logger
}

func NewSpecialistScraper(fetcher *fetch.Client, baseURL string, startYear, endYear, topN int, logger *zap.Logger) *SpecialistScraper {
	return &SpecialistScraper{
		fetcher:   fetcher,
		baseURL:   baseURL,
		startYear: startYear,
		endYear:   endYear,
		topN:      topN,
		logger:    logger,
	}
}

// FetchYear reads one year's ranking and returns the top entries that carry
// a rider profile link. Rows without a link are skipped silently.
func (s *SpecialistScraper) FetchYear(ctx context.Context, year int) ([]domain.RiderRef, error) {
	url := fmt.Sprintf(rankingURLFormat, s.baseURL, year-1)
	doc, err := s.fetcher.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	return s.parseRanking(doc), nil
}

func (s *SpecialistScraper) parseRanking(doc *goquery.Document) []domain.RiderRef {
	var refs []domain.RiderRef
	doc.Find(rankingSelectors.rows).EachWithBreak(func(i int, row *goquery.Selection) bool {
		if i >= s.topN {
			return false
		}
		link := row.Find(rankingSelectors.riderLink).First()
		if link.Length() == 0 {
			return true
		}
		href, ok := link.Attr("href")
		if !ok {
			return true
		}
		refs = append(refs, domain.RiderRef{
			Name: link.Text(),
			URL:  s.baseURL + href,
		})
		return true
	})
	return refs
}

// FetchAll unions every configured ranking year. A rider ranked in several
// years appears once, keyed by the (name, url) pair; a display name that
// changes formatting between years would slip through as a second ref.
func (s *SpecialistScraper) FetchAll(ctx context.Context) ([]domain.RiderRef, error) {
	seen := make(map[domain.RiderRef]struct{})
	var refs []domain.RiderRef

	for year := s.startYear; year <= s.endYear; year++ {
		yearRefs, err := s.FetchYear(ctx, year)
		if err != nil {
			return nil, fmt.Errorf("ranking year %d: %w", year, err)
		}
		s.logger.Info("ranking year scanned",
			zap.Int("year", year),
			zap.Int("riders", len(yearRefs)))

		for _, ref := range yearRefs {
			if _, ok := seen[ref]; ok {
				continue
			}
			seen[ref] = struct{}{}
			refs = append(refs, ref)
		}
	}

	return refs, nil
}
