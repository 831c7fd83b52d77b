package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/PuerkitoBio/goquery"
	"github.com/hafizhr/kliping/app/config"
	"github.com/hafizhr/kliping/app/scrape"
)

// Acquirer scrapes the catalog listing page: render, wait for the content
// container, scroll until the page stops growing, then extract one record
// per item container.
type Acquirer struct {
	cfg      config.CatalogConfig
	rendered Renderer
	debugDir string
}

func NewAcquirer(cfg config.CatalogConfig, rendered Renderer, debugDir string) *Acquirer {
	return &Acquirer{
		cfg:      cfg,
		rendered: rendered,
		debugDir: debugDir,
	}
}

// Run returns every extracted item. Zero matching containers is an empty
// result with the page persisted for diagnosis, not an error; only a
// failure to produce any page at all is surfaced.
func (a *Acquirer) Run(ctx context.Context) ([]Record, error) {
	slog.Info("Starting catalog acquisition", "url", a.cfg.URL)

	doc, err := a.rendered.Fetch(ctx, a.cfg.URL, scrape.RenderOptions{
		WaitSelector:   a.cfg.ReadySelector,
		ScrollToBottom: true,
		SnapshotName:   "catalog",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render catalog page: %w", err)
	}

	containers := a.findContainers(doc)
	if containers == nil {
		slog.Error("No item containers found with any selector", "url", a.cfg.URL)
		a.dumpPage(doc)
		return []Record{}, nil
	}

	records := make([]Record, 0, containers.Length())
	containers.Each(func(i int, item *goquery.Selection) {
		record := a.extractItem(item)
		slog.Debug("Processed catalog item", "index", i+1, "title", record.Title)
		records = append(records, record)
	})

	slog.Info("Catalog acquisition finished", "items", len(records))
	return records, nil
}

// findContainers tries each container-level locator in order and stops at
// the first one yielding at least one match. Matches from different
// strategies are never merged.
func (a *Acquirer) findContainers(doc *goquery.Document) *goquery.Selection {
	for _, selector := range a.cfg.ContainerSelectors {
		matches := doc.Find(selector)
		if matches.Length() > 0 {
			slog.Info("Found item containers", "selector", selector, "count", matches.Length())
			return matches
		}
	}
	return nil
}

// extractItem resolves the four catalog fields independently; an unresolved
// field defaults to the sentinel rather than dropping the record.
func (a *Acquirer) extractItem(item *goquery.Selection) Record {
	record := Record{
		Title:     SentinelField,
		Publisher: SentinelField,
		Price:     SentinelField,
		ImageURL:  SentinelField,
	}

	if title, ok := scrape.Resolve(item, a.cfg.TitleSelectors, scrape.ExtractTitleOrText); ok {
		record.Title = title
	}
	if publisher, ok := scrape.Resolve(item, a.cfg.PublisherSelectors, scrape.ExtractTitleOrText); ok {
		record.Publisher = publisher
	}
	if price, ok := scrape.Resolve(item, a.cfg.PriceSelectors, scrape.ExtractText); ok {
		record.Price = price
	}
	if image, ok := scrape.Resolve(item, a.cfg.ImageSelectors, scrape.ExtractImageSrc); ok {
		record.ImageURL = image
	}

	return record
}

// dumpPage persists the rendered page source so a selector drift can be
// diagnosed offline.
func (a *Acquirer) dumpPage(doc *goquery.Document) {
	if a.debugDir == "" {
		return
	}

	html, err := doc.Html()
	if err != nil {
		slog.Warn("Failed to serialize page for diagnosis", "error", err)
		return
	}

	path := filepath.Join(a.debugDir, "html", "page_source.html")
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		slog.Warn("Failed to save page source", "path", path, "error", err)
		return
	}

	slog.Info("Saved page source for diagnosis", "path", path)
}
