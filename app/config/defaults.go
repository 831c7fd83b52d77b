package config

// Selector cascades for sources whose markup has no dedicated entry.
var (
	FallbackHeadlineSelectors = []string{"h1", "h2.title", ".headline", ".title"}
	FallbackImageSelectors    = []string{"img"}
)

func defaultConfig() *Config {
	return &Config{
		NewsSources: []Source{
			{
				Name: "kompas",
				URL:  "https://www.kompas.com/",
				HeadlineSelectors: []string{
					".read__title",
					".headline__title",
					".most__title",
					".trending__title",
				},
				ImageSelectors: []string{
					".photo__wrap img",
					".headline__thumb img",
					"img.lozad",
				},
			},
			{
				Name: "detik",
				URL:  "https://www.detik.com/",
				HeadlineSelectors: []string{
					".detail__title",
					".media__title",
					".title",
					"h1.title",
					"h2.title",
				},
				ImageSelectors: []string{
					".detail__img-wrap img",
					".headline__img img",
					"picture img",
				},
			},
			{
				Name: "tribun",
				URL:  "https://www.tribunnews.com/",
				HeadlineSelectors: []string{
					".hltitle",
					".headline-caption",
					".newslist-title",
					"h1.f50",
				},
				ImageSelectors: []string{
					".imgpreview img",
					".headline-img img",
					".news-image img",
				},
			},
		},
		Catalog: CatalogConfig{
			URL:           "https://www.gramedia.com/promo/international-book",
			ReadySelector: "div.ProductCard_cardContent__fawWr, div.product-card",
			ContainerSelectors: []string{
				"div.ProductCard_cardContent__fawWr",
				"div.product-card",
				"div[data-testid='productCard']",
				"div.product-item",
			},
			TitleSelectors: []string{
				"h2.text-neutral-700",
				"h2.product-title",
				"div.product-name",
				"[data-testid='productTitle']",
			},
			PublisherSelectors: []string{
				"div.text-neutral-500",
				"div.publisher",
				"div.product-publisher",
				"[data-testid='productPublisher']",
			},
			PriceSelectors: []string{
				"div.text-s-extrabold",
				"div.product-price",
				"div.price",
				"[data-testid='productPrice']",
			},
			ImageSelectors: []string{
				"img.object-contain",
				"img.product-image",
				"img[data-testid='productImage']",
			},
		},
		Trending: TrendingConfig{
			GraphQLURL:    "https://graphql.anilist.co",
			PageURL:       "https://anilist.co/search/anime/trending",
			CardSelector:  "div.media-card",
			TitleSelector: "div.title",
			ImageSelector: "img.image",
			PerPage:       50,
		},
	}
}
