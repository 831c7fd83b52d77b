package artifact

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hafizhr/kliping/app/trending"
)

const (
	trendingJSONFile = "anilist_trending.json"
	trendingCSVFile  = "anilist_trending.csv"
)

// WriteTrending overwrites the trending JSON document wholesale, plus a
// parallel delimited-text copy with the same fields, and returns the JSON
// artifact path.
func (s *Store) WriteTrending(entries []trending.Entry) (string, error) {
	if entries == nil {
		entries = []trending.Entry{}
	}

	data, err := json.MarshalIndent(entries, "", "    ")
	if err != nil {
		return "", fmt.Errorf("failed to encode trending entries: %w", err)
	}

	path := filepath.Join(s.resultsDir, trendingJSONFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write trending artifact: %w", err)
	}

	if err := s.writeTrendingCSV(entries); err != nil {
		return "", err
	}

	return path, nil
}

func (s *Store) writeTrendingCSV(entries []trending.Entry) error {
	f, err := os.Create(filepath.Join(s.resultsDir, trendingCSVFile))
	if err != nil {
		return fmt.Errorf("failed to create trending CSV: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"tag", "image", "title"}); err != nil {
		return fmt.Errorf("failed to write trending CSV: %w", err)
	}
	for _, entry := range entries {
		if err := w.Write([]string{entry.Tag, entry.Image, entry.Title}); err != nil {
			return fmt.Errorf("failed to write trending CSV: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

func (s *Store) ReadTrending(path string) ([]trending.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read trending artifact: %w", err)
	}

	var entries []trending.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode trending artifact: %w", err)
	}

	return entries, nil
}
