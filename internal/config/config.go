package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/couchcryptid/storm-impact-report/internal/loader"
)

// Config holds all report settings, populated from environment variables.
// CLI flags override individual fields after Load.
type Config struct {
	LogLevel   string
	LogFormat  string
	NAPolicy   string
	OutDir     string
	ChartTheme string
	TopLimit   int
}

// envBindings maps viper keys to their environment variables and defaults.
var envBindings = []struct {
	key      string
	env      string
	fallback any
}{
	{"log_level", "LOG_LEVEL", "info"},
	{"log_format", "LOG_FORMAT", "text"},
	{"na_policy", "NA_POLICY", string(loader.PolicyFail)},
	{"out_dir", "REPORT_OUT", "report"},
	{"chart_theme", "CHART_THEME", "westeros"},
	{"top_limit", "TOP_LIMIT", 0},
}

// Load reads configuration from environment variables, applying defaults
// where unset, and validates the result.
func Load() (*Config, error) {
	v := viper.New()
	v.AllowEmptyEnv(true)
	for _, b := range envBindings {
		v.SetDefault(b.key, b.fallback)
		if err := v.BindEnv(b.key, b.env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", b.env, err)
		}
	}

	cfg := &Config{
		LogLevel:   v.GetString("log_level"),
		LogFormat:  v.GetString("log_format"),
		NAPolicy:   v.GetString("na_policy"),
		OutDir:     v.GetString("out_dir"),
		ChartTheme: v.GetString("chart_theme"),
		TopLimit:   v.GetInt("top_limit"),
	}

	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q (want json or text)", cfg.LogFormat)
	}
	if _, err := loader.ParsePolicy(cfg.NAPolicy); err != nil {
		return nil, fmt.Errorf("invalid NA_POLICY: %w", err)
	}
	if cfg.OutDir == "" {
		return nil, fmt.Errorf("REPORT_OUT must not be empty")
	}
	if cfg.TopLimit < 0 {
		return nil, fmt.Errorf("invalid TOP_LIMIT %d (must be >= 0)", cfg.TopLimit)
	}

	return cfg, nil
}
