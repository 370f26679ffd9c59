// Package config provides functionality for managing configuration options
// for the application using command-line flags and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"
)

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string

	// DatabaseDSN holds the database connection string for the application.
	DatabaseDSN string

	// ScraperBaseURL is the root URL of the directory site the lead source scrapes.
	ScraperBaseURL string

	// CacheTTL is how long list/read results stay cached before expiring.
	CacheTTL time.Duration

	// SessionTTL is how long a login session token stays valid.
	SessionTTL time.Duration

	// Config is the path to the Config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Port, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.ScraperBaseURL, "s", "https://www.gelbeseiten.de", "lead source base url")
	flag.DurationVar(&options.CacheTTL, "cache-ttl", 30*time.Second, "read cache time-to-live")
	flag.DurationVar(&options.SessionTTL, "session-ttl", 24*time.Hour, "session token time-to-live")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct containing
// the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Port = serverAddress
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if base := os.Getenv("SCRAPER_BASE_URL"); base != "" {
		options.ScraperBaseURL = base
	}
	if ttl := os.Getenv("CACHE_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			options.CacheTTL = d
		}
	}

	return options
}
