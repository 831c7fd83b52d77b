package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Extraction selects how a value is read from a matched element.
type Extraction int

const (
	// ExtractText takes the trimmed text content.
	ExtractText Extraction = iota
	// ExtractImageSrc takes the src attribute, falling back to the
	// lazy-load data-src attribute.
	ExtractImageSrc
	// ExtractTitleOrText takes the title attribute, falling back to the
	// trimmed text content.
	ExtractTitleOrText
)

// Resolve tries each selector in order against root and returns the first
// non-empty extracted value. It never compares candidates across selectors:
// the first match wins even when a later one would be longer or more
// complete. The second return value is false when the cascade is exhausted;
// callers decide what that means for their field.
func Resolve(root *goquery.Selection, selectors []string, ex Extraction) (string, bool) {
	for _, selector := range selectors {
		match := root.Find(selector).First()
		if match.Length() == 0 {
			continue
		}

		value := extract(match, ex)
		if value != "" {
			return value, true
		}
	}

	return "", false
}

func extract(match *goquery.Selection, ex Extraction) string {
	switch ex {
	case ExtractImageSrc:
		if src, ok := match.Attr("src"); ok && src != "" {
			return src
		}
		if src, ok := match.Attr("data-src"); ok && src != "" {
			return src
		}
		return ""
	case ExtractTitleOrText:
		if title, ok := match.Attr("title"); ok && title != "" {
			return title
		}
		return strings.TrimSpace(match.Text())
	default:
		return strings.TrimSpace(match.Text())
	}
}
