// Package scrape turns fetched procyclingstats pages into typed records.
// Every extractor keeps its selectors in a package-level table so that
// layout drift on the source site is a one-table change.
package scrape

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	scrapeerrors "github.com/velodata/tt-scraper/pkg/errors"
)

func newMissing(url, field string) error {
	return scrapeerrors.NewExtractionError("element not found", url, field, nil)
}

func requiredText(sel *goquery.Selection, selector, url, field string) (string, error) {
	node := sel.Find(selector).First()
	if node.Length() == 0 {
		return "", scrapeerrors.NewExtractionError("element not found", url, field, nil)
	}
	return strings.TrimSpace(node.Text()), nil
}

func requiredInt(sel *goquery.Selection, selector, url, field string) (int, error) {
	text, err := requiredText(sel, selector, url, field)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(text)
	if err != nil {
		return 0, scrapeerrors.NewExtractionError("field is not an integer", url, field, err)
	}
	return v, nil
}

func requiredFloat(sel *goquery.Selection, selector, url, field string) (float64, error) {
	text, err := requiredText(sel, selector, url, field)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, scrapeerrors.NewExtractionError("field is not a number", url, field, err)
	}
	return v, nil
}

func requiredAttr(sel *goquery.Selection, selector, attr, url, field string) (string, error) {
	node := sel.Find(selector).First()
	if node.Length() == 0 {
		return "", scrapeerrors.NewExtractionError("element not found", url, field, nil)
	}
	value, ok := node.Attr(attr)
	if !ok {
		return "", scrapeerrors.NewExtractionError("attribute missing", url, field, nil)
	}
	return value, nil
}
