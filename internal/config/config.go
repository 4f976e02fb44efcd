package config

import "github.com/mbelyaev/ferry/internal/models"

// Config is the read-only settings snapshot the engine consumes per request.
// The engine never mutates it.
//
// Fields:
//   - DefaultProfileID: profile used when a request names none.
//   - Proxy: proxy URL applied to transfers unless a profile overrides it.
//   - RenameEnabled/RenameFormat: file-name policy applied at task build time.
//   - LinkFormat: clipboard link presentation ("url", "html" or "markdown").
//   - HistoryDriver/HistoryDSN: where batch results are persisted
//     ("sqlite" or "postgres").
type Config struct {
	DefaultProfileID string
	Proxy            string

	RenameEnabled bool
	RenameFormat  string

	LinkFormat       string
	ShowNotification bool

	HistoryDriver string
	HistoryDSN    string

	DownloadDir string

	Profiles []models.Profile
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.RenameFormat = "{y}{m}{d}{h}{i}{s}{ms}"
	c.LinkFormat = "url"
	c.ShowNotification = true
	c.HistoryDriver = "sqlite"
	c.HistoryDSN = "ferry.db"
	c.DownloadDir = "downloads"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
