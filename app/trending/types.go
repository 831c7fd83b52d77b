package trending

import (
	"context"

	"github.com/PuerkitoBio/goquery"
	"github.com/hafizhr/kliping/app/scrape"
)

// Entry is one trending-media record. Tag is defined as equal to Title: no
// independent tagging signal exists upstream, and the equality is part of
// the documented output.
type Entry struct {
	Title string `json:"title"`
	Image string `json:"image"`
	Tag   string `json:"tag"`
}

// PageFetcher provides the card-based listing page for the DOM fallback.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

var _ PageFetcher = (*scrape.StaticFetcher)(nil)
