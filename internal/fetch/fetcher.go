package fetch

import (
	"bytes"
	"context"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	scrapeerrors "github.com/velodata/tt-scraper/pkg/errors"
)

// Client fetches pages and hands back parsed documents. One Client is
// shared by every concurrent fetch in a run, so all requests draw from a
// single connection pool. There is no retry and no caching; a fixed timeout
// guards against hung pages.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

type Options struct {
	Timeout   time.Duration
	UserAgent string
}

func NewClient(opts Options, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetTimeout(opts.Timeout).
		SetHeader("User-Agent", opts.UserAgent)

	return &Client{
		http:   httpClient,
		logger: logger,
	}
}

// Get fetches url and parses the body into a queryable document. Network
// failures and non-2xx statuses come back as *errors.TransportError.
func (c *Client) Get(ctx context.Context, url string) (*goquery.Document, error) {
	res, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, scrapeerrors.NewTransportError("request failed", url, 0, err)
	}
	if res.IsError() {
		return nil, scrapeerrors.NewTransportError("unexpected status code", url, res.StatusCode(), nil)
	}

	c.logger.Debug("fetched page",
		zap.String("url", url),
		zap.Int("bytes", len(res.Body())))

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, scrapeerrors.NewExtractionError("html parse failed", url, "", err)
	}
	return doc, nil
}
