package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// HTTP server configuration
	Port string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`

	// Storage configuration
	ResultsDir  string `long:"results-dir" env:"RESULTS_DIR" default:"./results" description:"Directory for persisted scrape artifacts"`
	LogsDir     string `long:"logs-dir" env:"LOGS_DIR" default:"./logs" description:"Directory for log files"`
	DebugDir    string `long:"debug-dir" env:"DEBUG_DIR" default:"./debug" description:"Directory for diagnostic screenshots and page dumps"`
	SourcesFile string `long:"sources-file" env:"SOURCES_FILE" default:"" description:"Optional YAML file overriding the built-in source and selector tables"`

	// Scraping configuration
	UserAgent       string `long:"user-agent" env:"USER_AGENT" default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36" description:"User agent string for HTTP requests and the headless browser"`
	FetchTimeout    int    `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"10" description:"Static fetch timeout in seconds"`
	RenderTimeout   int    `long:"render-timeout" env:"RENDER_TIMEOUT" default:"30" description:"Page load and ready-wait timeout for the headless browser in seconds"`
	ScrollSettle    int    `long:"scroll-settle" env:"SCROLL_SETTLE" default:"3" description:"Settle delay between scroll iterations in seconds"`
	RefreshInterval int    `long:"refresh-interval" env:"REFRESH_INTERVAL" default:"0" description:"Background refresh interval in seconds (0 disables background refresh)"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, Asia/Jakarta)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Port:            raw.Port,
		ResultsDir:      raw.ResultsDir,
		LogsDir:         raw.LogsDir,
		DebugDir:        raw.DebugDir,
		SourcesFile:     raw.SourcesFile,
		UserAgent:       raw.UserAgent,
		FetchTimeout:    raw.FetchTimeout,
		RenderTimeout:   raw.RenderTimeout,
		ScrollSettle:    raw.ScrollSettle,
		RefreshInterval: raw.RefreshInterval,
		Timezone:        raw.Timezone,
		Debug:           raw.Debug,
		Version:         GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
