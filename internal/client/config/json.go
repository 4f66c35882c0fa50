package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/effyhq/effy-cli/internal/flagx"
	"github.com/effyhq/effy-cli/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the timeout either as a string like
// "30s" or as integer nanoseconds. Zero-valued fields leave the runtime
// Config untouched, so a partial file only overrides what it names.
type JsonConfig struct {
	BaseURL        string         `json:"base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	TokenPath      string         `json:"token_path"`
}

// parseJson overlays cfg with values loaded from the JSON file named by the
// -c/-config flags. When no flag is given, nothing is loaded. Read or
// unmarshal errors panic; this runs once at startup before any work begins.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
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

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.TokenPath != "" {
		cfg.TokenPath = jc.TokenPath
	}
}
