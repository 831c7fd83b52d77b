package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Category keys the persisted artifacts. Each category's newest file is
// authoritative; older ones are inert.
type Category string

const (
	CategoryNews     Category = "news"
	CategoryCatalog  Category = "catalog"
	CategoryTrending Category = "trending"
)

// Filename patterns per category. News and catalog artifacts are
// timestamped workbooks superseded by the next run; the trending document
// is overwritten in place.
var patterns = map[Category]string{
	CategoryNews:     "news_headlines_*.xlsx",
	CategoryCatalog:  "gramedia_books_*.xlsx",
	CategoryTrending: trendingJSONFile,
}

// Store is the read/write boundary for persisted artifacts.
type Store struct {
	resultsDir string
}

func NewStore(resultsDir string) *Store {
	return &Store{resultsDir: resultsDir}
}

// Latest returns the path and modification time of the newest artifact for
// the category. The third return value is false when no artifact exists.
func (s *Store) Latest(category Category) (string, time.Time, bool, error) {
	pattern, ok := patterns[category]
	if !ok {
		return "", time.Time{}, false, fmt.Errorf("unknown artifact category: %s", category)
	}

	matches, err := filepath.Glob(filepath.Join(s.resultsDir, pattern))
	if err != nil {
		return "", time.Time{}, false, fmt.Errorf("failed to scan artifacts: %w", err)
	}

	var newestPath string
	var newestTime time.Time

	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil {
			continue
		}
		if newestPath == "" || info.ModTime().After(newestTime) {
			newestPath = match
			newestTime = info.ModTime()
		}
	}

	if newestPath == "" {
		return "", time.Time{}, false, nil
	}

	return newestPath, newestTime, true, nil
}

func (s *Store) timestampedPath(prefix, ext string) string {
	name := fmt.Sprintf("%s_%s%s", prefix, time.Now().Format("20060102_150405"), ext)
	return filepath.Join(s.resultsDir, name)
}
