package cfg

import (
	"cmp"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// HTTP configuration
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`

	// Render cache configuration
	RedisURL          string `long:"redis-url" env:"REDIS_URL" description:"Redis render cache URL (takes precedence over db-path)"`
	DBPath            string `long:"db-path" env:"DB_PATH" default:"./data/renders.db" description:"SQLite render cache path (empty disables caching)"`
	CacheTTL          int    `long:"cache-ttl" env:"CACHE_TTL" default:"3600" description:"Render cache TTL in seconds"`
	WorkerCount       int    `long:"worker-count" env:"WORKER_COUNT" default:"2" description:"Number of background workers for prerendering"`
	SchedulerInterval int    `long:"scheduler-interval" env:"SCHEDULER_INTERVAL" default:"300" description:"Cache pruning interval in seconds"`

	// Reading preferences
	ThemesFile string `long:"themes-file" env:"THEMES_FILE" description:"YAML file with theme palettes (built-in palettes when empty)"`
	Theme      string `long:"theme" env:"THEME" default:"light" description:"Default reading theme"`
	FontFamily string `long:"font-family" env:"FONT_FAMILY" default:"serif" description:"Default font family"`
	FontSize   int    `long:"font-size" env:"FONT_SIZE" default:"16" description:"Default font size in px"`

	// Document resources
	StylesheetURL    string `long:"stylesheet-url" env:"STYLESHEET_URL" default:"https://s0.wp.com/wp-content/themes/h4/global.css" description:"External base stylesheet URL"`
	SupportScriptURL string `long:"support-script-url" env:"SUPPORT_SCRIPT_URL" default:"file:///android_asset/reader_text_events.js" description:"Text events support script URL"`
	PhotonHost       string `long:"photon-host" env:"PHOTON_HOST" default:"i0.wp.com" description:"Image resizing proxy host"`

	// Display metrics
	DisplayWidth   int     `long:"display-width" env:"DISPLAY_WIDTH" default:"1080" description:"Display width in px"`
	DisplayDensity float64 `long:"display-density" env:"DISPLAY_DENSITY" default:"2.625" description:"Display density (px per dp)"`
	MarginMedium   int     `long:"margin-medium" env:"MARGIN_MEDIUM" default:"16" description:"Medium margin in px"`
	MarginLarge    int     `long:"margin-large" env:"MARGIN_LARGE" default:"24" description:"Large margin in px"`
	DetailMargin   int     `long:"detail-margin" env:"DETAIL_MARGIN" default:"32" description:"Post detail margin in px"`

	// Application metadata
	Debug bool `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	return load(nil)
}

// LoadArgs parses args instead of os.Args.
func LoadArgs(args []string) (*Cfg, error) {
	return load(args)
}

func load(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	var err error
	if args == nil {
		_, err = parser.Parse()
	} else {
		_, err = parser.ParseArgs(args)
	}
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Port:              raw.Port,
		APIAccessKey:      raw.APIAccessKey,
		RedisURL:          raw.RedisURL,
		DBPath:            raw.DBPath,
		CacheTTL:          raw.CacheTTL,
		WorkerCount:       raw.WorkerCount,
		SchedulerInterval: raw.SchedulerInterval,
		ThemesFile:        raw.ThemesFile,
		Theme:             raw.Theme,
		FontFamily:        raw.FontFamily,
		FontSize:          raw.FontSize,
		StylesheetURL:     raw.StylesheetURL,
		SupportScriptURL:  raw.SupportScriptURL,
		PhotonHost:        raw.PhotonHost,
		DisplayWidth:      raw.DisplayWidth,
		DisplayDensity:    raw.DisplayDensity,
		MarginMedium:      raw.MarginMedium,
		MarginLarge:       raw.MarginLarge,
		DetailMargin:      raw.DetailMargin,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	if err := validate(cfg); err != nil {
		return nil, err
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

func validate(cfg *Cfg) error {
	positiveFields := map[string]int{
		"display width":      cfg.DisplayWidth,
		"worker count":       cfg.WorkerCount,
		"scheduler interval": cfg.SchedulerInterval,
	}
	for fieldName, fieldValue := range positiveFields {
		if fieldValue <= 0 {
			return fmt.Errorf("%s must be positive", fieldName)
		}
	}

	nonNegativeFields := map[string]int{
		"cache TTL":     cfg.CacheTTL,
		"medium margin": cfg.MarginMedium,
		"large margin":  cfg.MarginLarge,
		"detail margin": cfg.DetailMargin,
	}
	for fieldName, fieldValue := range nonNegativeFields {
		if fieldValue < 0 {
			return fmt.Errorf("%s must be non-negative", fieldName)
		}
	}

	if cfg.DisplayDensity <= 0 {
		return fmt.Errorf("display density must be positive")
	}

	return nil
}
