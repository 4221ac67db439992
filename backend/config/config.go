package config

import (
	"github.com/greenmind-app/greenmind/greenmind"
)

// WebAppConfig contains web-specific configuration
type WebAppConfig struct {
	Config      *greenmind.Config
	Debug       bool
	Environment string
}

// NewWebAppConfig creates a new web app configuration
func NewWebAppConfig(cfg *greenmind.Config, debug bool) *WebAppConfig {
	environment := "production"
	if debug {
		environment = "development"
	}

	return &WebAppConfig{
		Config:      cfg,
		Debug:       debug,
		Environment: environment,
	}
}

// GetWebConfig returns the web configuration
func (w *WebAppConfig) GetWebConfig() greenmind.WebConfig {
	return w.Config.Web
}

// GetLogConfig returns the log configuration
func (w *WebAppConfig) GetLogConfig() greenmind.LogConfig {
	return w.Config.Log
}
