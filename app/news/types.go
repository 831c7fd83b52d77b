package news

import (
	"context"

	"github.com/PuerkitoBio/goquery"
	"github.com/hafizhr/kliping/app/scrape"
)

// Sentinel values substituted when a field cannot be resolved by either
// fetch engine, keeping the record shape stable.
const (
	SentinelHeadline = "Headline tidak ditemukan"
	SentinelImage    = "Image tidak ditemukan"
)

// Record is one acquired headline. Headline and Image are never empty: on
// total failure they hold the sentinel strings, and Media/URL always derive
// from configuration.
type Record struct {
	Media    string `json:"media"`
	Headline string `json:"headline"`
	Image    string `json:"image"`
	URL      string `json:"url"`
}

type StaticFetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

type RenderedFetcher interface {
	Fetch(ctx context.Context, url string, opts scrape.RenderOptions) (*goquery.Document, error)
}

var _ StaticFetcher = (*scrape.StaticFetcher)(nil)
var _ RenderedFetcher = (*scrape.RenderedFetcher)(nil)
