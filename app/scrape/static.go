package scrape

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// StaticFetcher performs a plain HTTP GET with a browser-like client
// identity and parses the response body into a navigable document. It does
// not judge field completeness; that is the caller's job.
type StaticFetcher struct {
	client *resty.Client
}

func NewStaticFetcher(userAgent string, timeout time.Duration) *StaticFetcher {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent)

	return &StaticFetcher{client: client}
}

func (f *StaticFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, &TransportError{URL: url, Status: resp.StatusCode()}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML from %s: %w", url, err)
	}

	return doc, nil
}
