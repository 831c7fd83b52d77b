package api

import (
	"context"

	"github.com/hafizhr/kliping/app/cache"
	"github.com/hafizhr/kliping/app/catalog"
	"github.com/hafizhr/kliping/app/news"
	"github.com/hafizhr/kliping/app/trending"
)

type CacheInterface interface {
	News(ctx context.Context) ([]news.Record, error)
	Catalog(ctx context.Context) ([]catalog.Record, error)
	Trending(ctx context.Context) ([]trending.Entry, error)
	RefreshAll(ctx context.Context) (cache.Counts, error)
	Status() (cache.Status, error)
}

var _ CacheInterface = (*cache.Cache)(nil)

type Handler struct {
	cache CacheInterface
}
