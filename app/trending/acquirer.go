package trending

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/hafizhr/kliping/app/config"
	"github.com/hafizhr/kliping/app/scrape"
)

const trendingQuery = `
query ($page: Int, $perPage: Int) {
  Page(page: $page, perPage: $perPage) {
    media(sort: TRENDING_DESC, type: ANIME) {
      id
      title {
        romaji
        english
        native
      }
      coverImage {
        large
        medium
      }
    }
  }
}`

type graphqlResponse struct {
	Data struct {
		Page struct {
			Media []struct {
				Title struct {
					Romaji  string `json:"romaji"`
					English string `json:"english"`
					Native  string `json:"native"`
				} `json:"title"`
				CoverImage struct {
					Large  string `json:"large"`
					Medium string `json:"medium"`
				} `json:"coverImage"`
			} `json:"media"`
		} `json:"Page"`
	} `json:"data"`
}

// Acquirer fetches trending media through a fixed GraphQL query, falling
// back to scraping the card-based listing page when the primary path yields
// nothing.
type Acquirer struct {
	cfg    config.TrendingConfig
	client *resty.Client
	pages  PageFetcher
}

func NewAcquirer(cfg config.TrendingConfig, userAgent string, timeout time.Duration, pages PageFetcher) *Acquirer {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent)

	return &Acquirer{
		cfg:    cfg,
		client: client,
		pages:  pages,
	}
}

// Run returns the acquired entries. The GraphQL path is tried first; a
// transport failure, non-2xx status or malformed shape all count as a
// zero-result condition and trigger the DOM fallback. An error is returned
// only when the fallback cannot produce a page either.
func (a *Acquirer) Run(ctx context.Context) ([]Entry, error) {
	entries, err := a.queryGraphQL(ctx)
	if err != nil {
		slog.Warn("GraphQL path failed, falling back to page scraping", "error", err)
	} else if len(entries) > 0 {
		slog.Info("Trending acquisition finished via GraphQL", "entries", len(entries))
		return entries, nil
	} else {
		slog.Warn("GraphQL path returned no entries, falling back to page scraping")
	}

	entries, err = a.scrapePage(ctx)
	if err != nil {
		return nil, fmt.Errorf("trending fallback failed: %w", err)
	}

	slog.Info("Trending acquisition finished via page scraping", "entries", len(entries))
	return entries, nil
}

func (a *Acquirer) queryGraphQL(ctx context.Context) ([]Entry, error) {
	var result graphqlResponse

	resp, err := a.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"query": trendingQuery,
			"variables": map[string]int{
				"page":    1,
				"perPage": a.cfg.PerPage,
			},
		}).
		SetResult(&result).
		Post(a.cfg.GraphQLURL)
	if err != nil {
		return nil, &scrape.TransportError{URL: a.cfg.GraphQLURL, Err: err}
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, &scrape.TransportError{URL: a.cfg.GraphQLURL, Status: resp.StatusCode()}
	}

	entries := make([]Entry, 0, len(result.Data.Page.Media))
	for _, media := range result.Data.Page.Media {
		title := cmp.Or(media.Title.Romaji, media.Title.English, media.Title.Native)
		image := cmp.Or(media.CoverImage.Large, media.CoverImage.Medium)

		entries = append(entries, Entry{
			Title: title,
			Image: image,
			Tag:   title,
		})
	}

	return entries, nil
}

func (a *Acquirer) scrapePage(ctx context.Context) ([]Entry, error) {
	doc, err := a.pages.Fetch(ctx, a.cfg.PageURL)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	doc.Find(a.cfg.CardSelector).Each(func(_ int, card *goquery.Selection) {
		image, _ := scrape.Resolve(card, []string{a.cfg.ImageSelector}, scrape.ExtractImageSrc)
		if strings.HasPrefix(image, "//") {
			image = "https:" + image
		}

		title, _ := scrape.Resolve(card, []string{a.cfg.TitleSelector}, scrape.ExtractText)

		entries = append(entries, Entry{
			Title: title,
			Image: image,
			Tag:   title,
		})
	})

	if entries == nil {
		entries = []Entry{}
	}

	return entries, nil
}
