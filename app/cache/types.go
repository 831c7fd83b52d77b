package cache

import (
	"context"
	"time"

	"github.com/hafizhr/kliping/app/catalog"
	"github.com/hafizhr/kliping/app/news"
	"github.com/hafizhr/kliping/app/trending"
)

type NewsAcquirer interface {
	Run(ctx context.Context) []news.Record
}

type CatalogAcquirer interface {
	Run(ctx context.Context) ([]catalog.Record, error)
}

type TrendingAcquirer interface {
	Run(ctx context.Context) ([]trending.Entry, error)
}

// Counts reports how many records each category produced during a forced
// refresh.
type Counts struct {
	News     int `json:"news_count"`
	Catalog  int `json:"catalog_count"`
	Trending int `json:"trending_count"`
}

// CategoryStatus describes the newest artifact of one category.
type CategoryStatus struct {
	Available  bool       `json:"available"`
	LastUpdate *time.Time `json:"last_update,omitempty"`
}

// Status maps category names to their artifact status.
type Status map[string]CategoryStatus
