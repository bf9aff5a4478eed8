// Package config reads the portfolio server settings from the environment.
// A .env file in the working directory is loaded first.
package config

import (
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"
)

const (
	defaultPort       = "8080"
	defaultAssetDir   = "."
	defaultStylesheet = "styles.css"
	defaultLogLevel   = "info"
)

// Config holds the runtime settings of the server.
type Config struct {
	Port string
	// AssetDir is the root that profile images, the resume and the stylesheet are resolved under.
	AssetDir string
	// ContentFile overrides the embedded content table when set.
	ContentFile string
	Stylesheet  string
	LogLevel    string
}

// Addr returns the listen address for the configured port.
func (c Config) Addr() string {
	return ":" + c.Port
}

// Load reads the configuration from the process environment.
func Load() Config {
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an arbitrary lookup function.
func FromLookup(lookup func(string) (string, bool)) Config {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}
	return Config{
		Port:        get("PORT", defaultPort),
		AssetDir:    get("PORTFOLIO_ASSET_DIR", defaultAssetDir),
		ContentFile: get("PORTFOLIO_CONTENT_FILE", ""),
		Stylesheet:  get("PORTFOLIO_STYLESHEET", defaultStylesheet),
		LogLevel:    get("LOG_LEVEL", defaultLogLevel),
	}
}
