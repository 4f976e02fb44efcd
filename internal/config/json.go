package config

import (
	"encoding/json"
	"os"

	"github.com/mbelyaev/ferry/internal/flagx"
	"github.com/mbelyaev/ferry/internal/models"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Boolean
// toggles use pointers so that an omitted key keeps the built-in default
// instead of forcing false.
type JsonConfig struct {
	DefaultProfileID string `json:"default_profile_id"`
	Proxy            string `json:"proxy"`

	RenameEnabled *bool  `json:"rename_enabled"`
	RenameFormat  string `json:"rename_format"`

	LinkFormat       string `json:"link_format"`
	ShowNotification *bool  `json:"show_notification"`

	HistoryDriver string `json:"history_driver"`
	HistoryDSN    string `json:"history_dsn"`

	DownloadDir string `json:"download_dir"`

	Profiles []models.Profile `json:"profiles"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.ConfigFileFlag().
//  2. If empty, no JSON is loaded and the function returns.
//
// Panics on read or unmarshal errors (caller should recover if desired).
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlayString(&cfg.DefaultProfileID, jc.DefaultProfileID)
	overlayString(&cfg.Proxy, jc.Proxy)
	overlayString(&cfg.RenameFormat, jc.RenameFormat)
	overlayString(&cfg.LinkFormat, jc.LinkFormat)
	overlayString(&cfg.HistoryDriver, jc.HistoryDriver)
	overlayString(&cfg.HistoryDSN, jc.HistoryDSN)
	overlayString(&cfg.DownloadDir, jc.DownloadDir)

	overlayBool(&cfg.RenameEnabled, jc.RenameEnabled)
	overlayBool(&cfg.ShowNotification, jc.ShowNotification)

	if len(jc.Profiles) > 0 {
		cfg.Profiles = jc.Profiles
	}
}

func overlayString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func overlayBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
