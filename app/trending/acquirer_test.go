package trending

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/hafizhr/kliping/app/config"
	"github.com/hafizhr/kliping/app/scrape"
	"github.com/stretchr/testify/require"
)

type stubPages struct {
	html  string
	err   error
	calls int
}

func (s *stubPages) Fetch(_ context.Context, _ string) (*goquery.Document, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return goquery.NewDocumentFromReader(strings.NewReader(s.html))
}

func testTrendingConfig(graphqlURL string) config.TrendingConfig {
	return config.TrendingConfig{
		GraphQLURL:    graphqlURL,
		PageURL:       "https://media.test/trending",
		CardSelector:  "div.media-card",
		TitleSelector: "div.title",
		ImageSelector: "img.image",
		PerPage:       50,
	}
}

const graphqlBody = `{
	"data": {
		"Page": {
			"media": [
				{
					"title": {"romaji": "Shingeki", "english": "Attack", "native": "進撃"},
					"coverImage": {"large": "https://cdn.test/large1.jpg", "medium": "https://cdn.test/medium1.jpg"}
				},
				{
					"title": {"romaji": "", "english": "One Piece", "native": "ワンピース"},
					"coverImage": {"large": "", "medium": "https://cdn.test/medium2.jpg"}
				}
			]
		}
	}
}`

func TestRunGraphQLPreferenceOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(graphqlBody))
	}))
	defer server.Close()

	pages := &stubPages{}
	acquirer := NewAcquirer(testTrendingConfig(server.URL), "TestBrowser/1.0", 5*time.Second, pages)

	entries, err := acquirer.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Romaji beats english, large image beats medium.
	require.Equal(t, Entry{Title: "Shingeki", Image: "https://cdn.test/large1.jpg", Tag: "Shingeki"}, entries[0])

	// Empty variants fall through the preference order.
	require.Equal(t, Entry{Title: "One Piece", Image: "https://cdn.test/medium2.jpg", Tag: "One Piece"}, entries[1])

	require.Zero(t, pages.calls, "fallback must not run when GraphQL yields entries")
}

func TestRunFallsBackOnMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": {"Page": {"media": []}}}`))
	}))
	defer server.Close()

	pages := &stubPages{html: `
		<div class="media-card">
			<img class="image" src="//img.test/cover.jpg">
			<div class="title">Fallback Show</div>
		</div>
	`}
	acquirer := NewAcquirer(testTrendingConfig(server.URL), "TestBrowser/1.0", 5*time.Second, pages)

	entries, err := acquirer.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, pages.calls)
	require.Len(t, entries, 1)

	// Protocol-relative image URLs are normalized; tag mirrors title.
	require.Equal(t, "https://img.test/cover.jpg", entries[0].Image)
	require.Equal(t, entries[0].Title, entries[0].Tag)
}

func TestRunFallsBackOnTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	pages := &stubPages{html: `<div class="media-card"><div class="title">Only Entry</div></div>`}
	acquirer := NewAcquirer(testTrendingConfig(server.URL), "TestBrowser/1.0", 5*time.Second, pages)

	entries, err := acquirer.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "Only Entry", entries[0].Title)
}

func TestRunSurfacesErrorWhenBothPathsFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	pages := &stubPages{err: &scrape.TransportError{URL: "https://media.test/trending", Status: 503}}
	acquirer := NewAcquirer(testTrendingConfig(server.URL), "TestBrowser/1.0", 5*time.Second, pages)

	_, err := acquirer.Run(context.Background())
	require.Error(t, err)
	require.True(t, scrape.IsTransport(err))
}
