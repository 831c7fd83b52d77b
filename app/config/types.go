package config

// Config holds the source and selector tables for every scrape category.
// It is loaded once at startup and treated as immutable afterwards.
type Config struct {
	NewsSources []Source       `yaml:"news_sources"`
	Catalog     CatalogConfig  `yaml:"catalog"`
	Trending    TrendingConfig `yaml:"trending"`
}

// Source identifies one news origin together with its selector cascades.
// Selector lists are tried in order; the first locator yielding a non-empty
// value wins.
type Source struct {
	Name              string   `yaml:"name"`
	URL               string   `yaml:"url"`
	HeadlineSelectors []string `yaml:"headline_selectors"`
	ImageSelectors    []string `yaml:"image_selectors"`
}

// CatalogConfig describes the catalog listing page and its per-item cascades.
type CatalogConfig struct {
	URL                string   `yaml:"url"`
	ReadySelector      string   `yaml:"ready_selector"`
	ContainerSelectors []string `yaml:"container_selectors"`
	TitleSelectors     []string `yaml:"title_selectors"`
	PublisherSelectors []string `yaml:"publisher_selectors"`
	PriceSelectors     []string `yaml:"price_selectors"`
	ImageSelectors     []string `yaml:"image_selectors"`
}

// TrendingConfig describes the trending-media GraphQL endpoint and the
// card-based listing page used as its fallback.
type TrendingConfig struct {
	GraphQLURL    string `yaml:"graphql_url"`
	PageURL       string `yaml:"page_url"`
	CardSelector  string `yaml:"card_selector"`
	TitleSelector string `yaml:"title_selector"`
	ImageSelector string `yaml:"image_selector"`
	PerPage       int    `yaml:"per_page"`
}
