package cfg

type Cfg struct {
	// HTTP server configuration
	Port string

	// Storage configuration
	ResultsDir  string
	LogsDir     string
	DebugDir    string
	SourcesFile string

	// Scraping configuration
	UserAgent       string
	FetchTimeout    int
	RenderTimeout   int
	ScrollSettle    int
	RefreshInterval int

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
