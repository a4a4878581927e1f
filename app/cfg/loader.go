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
	// Upstream configuration
	YouTubeAPIKey string `long:"youtube-api-key" env:"YOUTUBE_API_KEY" description:"YouTube Data API v3 key"`

	// Application configuration
	DataDir          string `long:"data-dir" env:"DATA_DIR" default:"./data" description:"Directory for the channel library database"`
	Port             string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	BaseUrl          string `long:"base-url" env:"BASE_URL" description:"Public base URL for the service (e.g., https://tubedeck.example.com)"`
	ImportFile       string `long:"import-file" env:"IMPORT_FILE" description:"Optional YAML file with channels and folders to import at startup"`
	VideosPerChannel int    `long:"videos-per-channel" env:"VIDEOS_PER_CHANNEL" default:"10" description:"Recent videos fetched per channel when building the feed"`
	SearchMaxResults int    `long:"search-max-results" env:"SEARCH_MAX_RESULTS" default:"5" description:"Maximum channel candidates returned by a search"`
	RSSFallback      bool   `long:"rss-fallback" env:"RSS_FALLBACK" description:"Fall back to the channel RSS feed when an API video fetch fails"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"TubeDeck/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
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
		YouTubeAPIKey:    raw.YouTubeAPIKey,
		DataDir:          raw.DataDir,
		Port:             raw.Port,
		BaseUrl:          raw.BaseUrl,
		ImportFile:       raw.ImportFile,
		VideosPerChannel: raw.VideosPerChannel,
		SearchMaxResults: raw.SearchMaxResults,
		RSSFallback:      raw.RSSFallback,
		UserAgent:        raw.UserAgent,
		Timezone:         raw.Timezone,
		Debug:            raw.Debug,
		Version:          GetVersion(),
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
			fmt.Printf("Timezone configured: %s\n", timezone)
		}
	}
	return nil
}
