package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStaticFetcherParsesDocument(t *testing.T) {
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Write([]byte(`<html><body><h1 class="read__title">Banjir di Jakarta</h1></body></html>`))
	}))
	defer server.Close()

	fetcher := NewStaticFetcher("TestBrowser/1.0", 5*time.Second)
	doc, err := fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	require.Equal(t, "TestBrowser/1.0", gotUserAgent)

	value, ok := Resolve(doc.Selection, []string{".read__title"}, ExtractText)
	require.True(t, ok)
	require.Equal(t, "Banjir di Jakarta", value)
}

func TestStaticFetcherNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	fetcher := NewStaticFetcher("TestBrowser/1.0", 5*time.Second)
	_, err := fetcher.Fetch(context.Background(), server.URL)
	require.Error(t, err)
	require.True(t, IsTransport(err), "non-2xx status must classify as transport error")
}

func TestStaticFetcherNetworkFailure(t *testing.T) {
	fetcher := NewStaticFetcher("TestBrowser/1.0", time.Second)
	_, err := fetcher.Fetch(context.Background(), "http://127.0.0.1:1/unreachable")
	require.Error(t, err)
	require.True(t, IsTransport(err), "connection failure must classify as transport error")
}
