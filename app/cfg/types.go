package cfg

import "time"

type Cfg struct {
	// HTTP configuration
	Port         string
	APIAccessKey string

	// Render cache configuration
	RedisURL          string
	DBPath            string
	CacheTTL          int
	WorkerCount       int
	SchedulerInterval int

	// Reading preferences
	ThemesFile string
	Theme      string
	FontFamily string
	FontSize   int

	// Document resources
	StylesheetURL    string
	SupportScriptURL string
	PhotonHost       string

	// Display metrics
	DisplayWidth   int
	DisplayDensity float64
	MarginMedium   int
	MarginLarge    int
	DetailMargin   int

	// Application metadata
	Debug   bool
	Version string
}

func (c *Cfg) GetCacheTTL() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

func (c *Cfg) GetSchedulerInterval() time.Duration {
	return time.Duration(c.SchedulerInterval) * time.Second
}
