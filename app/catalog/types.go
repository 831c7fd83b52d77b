package catalog

import (
	"context"

	"github.com/PuerkitoBio/goquery"
	"github.com/hafizhr/kliping/app/scrape"
)

// SentinelField replaces any item field the cascade cannot resolve, keeping
// the record shape stable across heterogeneous source markup.
const SentinelField = "N/A"

// Record is one catalog item. Field names follow the documented artifact
// schema (Judul/Penerbit/Harga/Image URL columns).
type Record struct {
	Title     string `json:"title"`
	Publisher string `json:"publisher"`
	Price     string `json:"price"`
	ImageURL  string `json:"imageUrl"`
}

type Renderer interface {
	Fetch(ctx context.Context, url string, opts scrape.RenderOptions) (*goquery.Document, error)
}

var _ Renderer = (*scrape.RenderedFetcher)(nil)
