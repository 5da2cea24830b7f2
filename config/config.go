// Package config reads tenderdesk settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"tenderdesk/apiclient"
)

const (
	EnvAPIURL     = "TENDERDESK_API_URL"
	EnvAPITimeout = "TENDERDESK_API_TIMEOUT"
)

// ErrMissingAPIURL is returned when no API base URL is configured.
var ErrMissingAPIURL = errors.New(EnvAPIURL + " is not set")

// Config holds the settings shared by every dialog.
type Config struct {
	APIURL     string
	APITimeout time.Duration
}

// LoadDotEnv loads the given files (".env" when none) into the process
// environment. A missing file is not an error.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("config: could not load %s: %v", f, err)
		}
	}
}

// FromEnv builds a Config from the environment. apiURLOverride, when not
// empty, wins over TENDERDESK_API_URL.
func FromEnv(apiURLOverride string) (Config, error) {
	cfg := Config{
		APIURL:     strings.TrimSpace(os.Getenv(EnvAPIURL)),
		APITimeout: apiclient.DefaultTimeout,
	}
	if apiURLOverride != "" {
		cfg.APIURL = strings.TrimSpace(apiURLOverride)
	}
	if cfg.APIURL == "" {
		return Config{}, ErrMissingAPIURL
	}

	if raw := strings.TrimSpace(os.Getenv(EnvAPITimeout)); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("%s: invalid duration %q", EnvAPITimeout, raw)
		}
		cfg.APITimeout = d
	}
	return cfg, nil
}
