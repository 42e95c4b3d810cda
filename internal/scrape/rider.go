package scrape

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/velodata/tt-scraper/internal/domain"
	"github.com/velodata/tt-scraper/internal/fetch"
)

// riderSelectors pins down where each rider field lives in the profile
// markup, relative to the info box.
var riderSelectors = struct {
	info        string
	nationality string
	birthYear   string
	dimensions  string
	height      string
	weight      string
	specialty   string // format with the 1-based specialty row index
	photo       string
}{
	info:        "body > div.wrapper > div.content > div.page-content.noSideNav > div > div.borderbox.left.w40.mb_w100 > div.borderbox.left.w65",
	nationality: "div:nth-child(3) > ul > li > div:nth-child(3) > a",
	birthYear:   "div:nth-child(2) > ul > li > div:nth-child(4)",
	dimensions:  "div:nth-child(4) > ul > li",
	height:      "div:nth-child(5)",
	weight:      "div:nth-child(2)",
	specialty:   "ul > li:nth-child(%d) > div.xvalue.ac",
	photo:       "body > div.wrapper > div.content > div.page-content.noSideNav > div > div.borderbox.left.w40.mb_w100 > div.borderbox.left.w30.mr5 > div > a > img",
}

// specialtyFields names the five specialty score rows in page order.
var specialtyFields = [...]string{"one_day", "gc", "time_trial", "sprint", "climber"}

// RiderScraper extracts rider profile pages. Every field it reads is
// required: a profile missing any of them fails as a whole and the rider is
// dropped upstream.
type RiderScraper struct {
	fetcher *fetch.Client
	baseURL string
	logger  *zap.Logger
}

func NewRiderScraper(fetcher *fetch.Client, baseURL string, logger *zap.Logger) *RiderScraper {
	return &RiderScraper{
		fetcher: fetcher,
		baseURL: baseURL,
		logger:  logger,
	}
}

func (s *RiderScraper) FetchRider(ctx context.Context, ref domain.RiderRef) (*domain.Rider, error) {
	doc, err := s.fetcher.Get(ctx, ref.URL)
	if err != nil {
		return nil, err
	}
	return s.Parse(ref, doc)
}

// Parse builds a rider record from an already-fetched profile document plus
// the display name the ranking listed the rider under.
func (s *RiderScraper) Parse(ref domain.RiderRef, doc *goquery.Document) (*domain.Rider, error) {
	first, last := domain.SplitName(ref.Name)

	info := doc.Find(riderSelectors.info).First()
	if info.Length() == 0 {
		return nil, newMissing(ref.URL, "info")
	}

	nationality, err := requiredText(info, riderSelectors.nationality, ref.URL, "nationality")
	if err != nil {
		return nil, err
	}
	birthYear, err := requiredInt(info, riderSelectors.birthYear, ref.URL, "birth_year")
	if err != nil {
		return nil, err
	}

	dims := info.Find(riderSelectors.dimensions).First()
	if dims.Length() == 0 {
		return nil, newMissing(ref.URL, "dimensions")
	}
	height, err := requiredFloat(dims, riderSelectors.height, ref.URL, "height")
	if err != nil {
		return nil, err
	}
	weight, err := requiredFloat(dims, riderSelectors.weight, ref.URL, "weight")
	if err != nil {
		return nil, err
	}

	var scores [len(specialtyFields)]int
	for i := range scores {
		selector := fmt.Sprintf(riderSelectors.specialty, i+1)
		scores[i], err = requiredInt(info, selector, ref.URL, specialtyFields[i])
		if err != nil {
			return nil, err
		}
	}

	photoSrc, err := requiredAttr(doc.Selection, riderSelectors.photo, "src", ref.URL, "photo_url")
	if err != nil {
		return nil, err
	}

	rider := &domain.Rider{
		URL:         ref.URL,
		FirstName:   first,
		LastName:    last,
		FullName:    first + " " + last,
		Nationality: nationality,
		BirthYear:   birthYear,
		Height:      height,
		Weight:      weight,
		OneDay:      scores[0],
		GC:          scores[1],
		TimeTrial:   scores[2],
		Sprint:      scores[3],
		Climber:     scores[4],
		PhotoURL:    s.baseURL + photoSrc,
	}

	s.logger.Debug("parsed rider",
		zap.String("rider", rider.FullName),
		zap.String("url", rider.URL))

	return rider, nil
}
