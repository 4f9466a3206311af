package config

import (
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// ReportingConfig controls report composition defaults.
type ReportingConfig struct {
	TrailingMonths   int `mapstructure:"trailingMonths"`
	TopN             int `mapstructure:"topN"`
	OverdueGraceDays int `mapstructure:"overdueGraceDays"`
}

func DefaultReportingConfig() ReportingConfig {
	return ReportingConfig{
		TrailingMonths:   12,
		TopN:             5,
		OverdueGraceDays: 0,
	}
}

func (c ReportingConfig) withDefaults() ReportingConfig {
	defaults := DefaultReportingConfig()
	if c.TrailingMonths <= 0 {
		c.TrailingMonths = defaults.TrailingMonths
	}
	if c.TopN <= 0 {
		c.TopN = defaults.TopN
	}
	if c.OverdueGraceDays < 0 {
		c.OverdueGraceDays = defaults.OverdueGraceDays
	}
	return c
}

// ReportingConfigHolder exposes the current reporting config, hot-reloaded
// when the config file changes.
type ReportingConfigHolder struct {
	current atomic.Value // holds ReportingConfig
}

func NewReportingConfigHolder() (*ReportingConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("ledgique")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/ledgique/config")
	v.AddConfigPath("/etc/ledgique")
	v.AddConfigPath(".")

	v.SetEnvPrefix("LEDGIQUE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	holder := &ReportingConfigHolder{}
	holder.store(readReporting(v))

	v.OnConfigChange(func(e fsnotify.Event) {
		if err := v.ReadInConfig(); err != nil {
			log.Printf("reporting config reload failed: %v", err)
			return
		}
		holder.store(readReporting(v))
	})
	v.WatchConfig()

	return holder, nil
}

// Current returns the active reporting configuration.
func (h *ReportingConfigHolder) Current() ReportingConfig {
	if h == nil {
		return DefaultReportingConfig()
	}
	if cfg, ok := h.current.Load().(ReportingConfig); ok {
		return cfg
	}
	return DefaultReportingConfig()
}

func (h *ReportingConfigHolder) store(cfg ReportingConfig) {
	h.current.Store(cfg.withDefaults())
}

func readReporting(v *viper.Viper) ReportingConfig {
	var cfg ReportingConfig
	if err := v.UnmarshalKey("reporting", &cfg); err != nil {
		log.Printf("reporting config unmarshal failed: %v", err)
		return DefaultReportingConfig()
	}
	return cfg.withDefaults()
}
