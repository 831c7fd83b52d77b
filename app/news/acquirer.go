package news

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/hafizhr/kliping/app/config"
	"github.com/hafizhr/kliping/app/scrape"
)

// renderGrace gives scripts time to run when the rendered engine has no
// specific element to wait for.
const renderGrace = 5 * time.Second

// rasterSuffixes accepted by the last-resort image sweep.
var rasterSuffixes = []string{".jpg", ".jpeg", ".png"}

// Acquirer collects one Record per configured source. Each source runs the
// same escalation: static fetch first, rendered fetch only when the static
// result is incomplete, sentinel values on exhaustion. One source failing
// never aborts the batch.
type Acquirer struct {
	sources  []config.Source
	static   StaticFetcher
	rendered RenderedFetcher
}

func NewAcquirer(sources []config.Source, static StaticFetcher, rendered RenderedFetcher) *Acquirer {
	return &Acquirer{
		sources:  sources,
		static:   static,
		rendered: rendered,
	}
}

// Run acquires every configured source sequentially, in configured order.
// The result always holds exactly one record per source.
func (a *Acquirer) Run(ctx context.Context) []Record {
	records := make([]Record, 0, len(a.sources))

	for _, source := range a.sources {
		record := a.acquire(ctx, source)
		slog.Info("Acquired news source", "source", source.Name, "headline", record.Headline)
		records = append(records, record)
	}

	return records
}

func (a *Acquirer) acquire(ctx context.Context, source config.Source) Record {
	headline, image, ok := a.tryStatic(ctx, source)
	if ok && headline != "" && image != "" {
		return Record{
			Media:    capitalize(source.Name),
			Headline: headline,
			Image:    image,
			URL:      source.URL,
		}
	}

	slog.Info("Static fetch incomplete, escalating to rendered engine", "source", source.Name)
	return a.tryRendered(ctx, source)
}

// tryStatic returns the resolved fields and whether the fetch itself
// succeeded. A transport failure is not terminal; it hands the source to
// the rendered engine.
func (a *Acquirer) tryStatic(ctx context.Context, source config.Source) (string, string, bool) {
	doc, err := a.static.Fetch(ctx, source.URL)
	if err != nil {
		slog.Warn("Static fetch failed", "source", source.Name, "error", err)
		return "", "", false
	}

	headline, _ := scrape.Resolve(doc.Selection, source.HeadlineSelectors, scrape.ExtractText)
	image, _ := scrape.Resolve(doc.Selection, source.ImageSelectors, scrape.ExtractImageSrc)

	return headline, image, true
}

// tryRendered is the terminal state: whatever it cannot resolve, directly
// or through the generic fallbacks, becomes a sentinel value.
func (a *Acquirer) tryRendered(ctx context.Context, source config.Source) Record {
	record := Record{
		Media:    capitalize(source.Name),
		Headline: SentinelHeadline,
		Image:    SentinelImage,
		URL:      source.URL,
	}

	doc, err := a.rendered.Fetch(ctx, source.URL, scrape.RenderOptions{
		Grace:        renderGrace,
		Snapshot:     true,
		SnapshotName: source.Name,
	})
	if err != nil {
		slog.Error("Rendered fetch failed", "source", source.Name, "error", err)
		return record
	}

	if headline, ok := scrape.Resolve(doc.Selection, source.HeadlineSelectors, scrape.ExtractText); ok {
		record.Headline = headline
	} else if headline, ok := scrape.Resolve(doc.Selection, config.FallbackHeadlineSelectors, scrape.ExtractText); ok {
		slog.Info("Headline resolved via fallback selectors", "source", source.Name)
		record.Headline = headline
	}

	if image, ok := scrape.Resolve(doc.Selection, source.ImageSelectors, scrape.ExtractImageSrc); ok {
		record.Image = image
	} else if image := findRasterImage(doc); image != "" {
		slog.Info("Image resolved via raster sweep", "source", source.Name)
		record.Image = image
	}

	return record
}

// findRasterImage sweeps every img element for a plain raster URL; it is
// the last resort before the image sentinel.
func findRasterImage(doc *goquery.Document) string {
	var found string

	doc.Find("img").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		src, ok := sel.Attr("src")
		if !ok {
			return true
		}
		for _, suffix := range rasterSuffixes {
			if strings.HasSuffix(src, suffix) {
				found = src
				return false
			}
		}
		return true
	})

	return found
}

func capitalize(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
