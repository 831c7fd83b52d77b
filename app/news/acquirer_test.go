package news

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/hafizhr/kliping/app/config"
	"github.com/hafizhr/kliping/app/scrape"
	"github.com/stretchr/testify/require"
)

type stubStatic struct {
	pages map[string]string // url -> HTML; missing url means transport error
	calls int
}

func (s *stubStatic) Fetch(_ context.Context, url string) (*goquery.Document, error) {
	s.calls++
	html, ok := s.pages[url]
	if !ok {
		return nil, &scrape.TransportError{URL: url, Status: 503}
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

type stubRendered struct {
	pages map[string]string
	calls int
}

func (s *stubRendered) Fetch(_ context.Context, url string, _ scrape.RenderOptions) (*goquery.Document, error) {
	s.calls++
	html, ok := s.pages[url]
	if !ok {
		return nil, &scrape.TransportError{URL: url, Err: context.DeadlineExceeded}
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

func testSources() []config.Source {
	return []config.Source{
		{
			Name:              "kompas",
			URL:               "https://kompas.test/",
			HeadlineSelectors: []string{".read__title"},
			ImageSelectors:    []string{".photo__wrap img"},
		},
		{
			Name:              "detik",
			URL:               "https://detik.test/",
			HeadlineSelectors: []string{".detail__title"},
			ImageSelectors:    []string{".detail__img-wrap img"},
		},
	}
}

const completePage = `
	<div class="read__title">Headline utama</div>
	<div class="photo__wrap"><img src="https://cdn.test/photo.jpg"></div>
`

func TestRunProducesOneRecordPerSourceInOrder(t *testing.T) {
	static := &stubStatic{pages: map[string]string{
		"https://kompas.test/": completePage,
		"https://detik.test/":  `<div class="detail__title">Berita detik</div><div class="detail__img-wrap"><img src="https://cdn.test/d.png"></div>`,
	}}
	rendered := &stubRendered{}

	acquirer := NewAcquirer(testSources(), static, rendered)
	records := acquirer.Run(context.Background())

	require.Len(t, records, 2)
	require.Equal(t, "Kompas", records[0].Media)
	require.Equal(t, "Detik", records[1].Media)
	require.Equal(t, "Headline utama", records[0].Headline)
	require.Equal(t, "https://cdn.test/photo.jpg", records[0].Image)

	for _, record := range records {
		require.NotEmpty(t, record.Headline)
		require.NotEmpty(t, record.Image)
		require.NotEmpty(t, record.Media)
		require.NotEmpty(t, record.URL)
	}
}

func TestEscalationIsDemandDriven(t *testing.T) {
	static := &stubStatic{pages: map[string]string{
		"https://kompas.test/": completePage,
	}}
	rendered := &stubRendered{pages: map[string]string{}}

	sources := testSources()[:1]
	acquirer := NewAcquirer(sources, static, rendered)
	acquirer.Run(context.Background())

	require.Equal(t, 1, static.calls)
	require.Zero(t, rendered.calls, "rendered engine must not run when static resolution is complete")
}

func TestIncompleteStaticEscalates(t *testing.T) {
	// Static page has a headline but no image.
	static := &stubStatic{pages: map[string]string{
		"https://kompas.test/": `<div class="read__title">Hanya judul</div>`,
	}}
	rendered := &stubRendered{pages: map[string]string{
		"https://kompas.test/": completePage,
	}}

	acquirer := NewAcquirer(testSources()[:1], static, rendered)
	records := acquirer.Run(context.Background())

	require.Equal(t, 1, rendered.calls)
	require.Equal(t, "Headline utama", records[0].Headline)
	require.Equal(t, "https://cdn.test/photo.jpg", records[0].Image)
}

func TestDoubleTransportFailureYieldsSentinelRecord(t *testing.T) {
	// kompas fails on both engines; detik succeeds statically.
	static := &stubStatic{pages: map[string]string{
		"https://detik.test/": `<div class="detail__title">Berita detik</div><div class="detail__img-wrap"><img src="https://cdn.test/d.png"></div>`,
	}}
	rendered := &stubRendered{pages: map[string]string{}}

	acquirer := NewAcquirer(testSources(), static, rendered)
	records := acquirer.Run(context.Background())

	require.Len(t, records, 2)
	require.Equal(t, SentinelHeadline, records[0].Headline)
	require.Equal(t, SentinelImage, records[0].Image)
	require.Equal(t, "Kompas", records[0].Media)
	require.Equal(t, "https://kompas.test/", records[0].URL)

	// The batch still carries the remaining source's real data.
	require.Equal(t, "Berita detik", records[1].Headline)
}

func TestRenderedFallbackSelectors(t *testing.T) {
	static := &stubStatic{pages: map[string]string{}}
	rendered := &stubRendered{pages: map[string]string{
		// No configured selector matches; generic h1 and the raster
		// sweep have to carry the record.
		"https://kompas.test/": `
			<h1>Judul generik</h1>
			<img src="https://cdn.test/pixel.gif">
			<img src="https://cdn.test/hero.jpg">
		`,
	}}

	acquirer := NewAcquirer(testSources()[:1], static, rendered)
	records := acquirer.Run(context.Background())

	require.Equal(t, "Judul generik", records[0].Headline)
	require.Equal(t, "https://cdn.test/hero.jpg", records[0].Image)
}
