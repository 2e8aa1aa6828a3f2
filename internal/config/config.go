// Package config handles application configuration from environment variables.
package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/Zachdehooge/loop-map/internal/dataset"
	"github.com/Zachdehooge/loop-map/internal/layers"
)

// Config holds all application configuration.
type Config struct {
	Sources     dataset.Sources
	OutputFile  string
	Coloring    layers.Coloring
	Addr        string
	HTTPTimeout time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Sources: dataset.Sources{
			Roads:     getEnv("LOOPMAP_ROADS", "roads in LA.geojson"),
			Junctions: getEnv("LOOPMAP_JUNCTIONS", "junctions in LA.geojson"),
			Links:     getEnv("LOOPMAP_LINKS", "links in LA.geojson"),
		},
		OutputFile:  getEnv("LOOPMAP_OUTPUT", "loopmap.html"),
		Coloring:    layers.Coloring(getEnv("LOOPMAP_COLORING", string(layers.ColorUniform))),
		Addr:        getEnv("LOOPMAP_ADDR", ":8080"),
		HTTPTimeout: getDurationEnv("LOOPMAP_HTTP_TIMEOUT_SECONDS", 15) * time.Second,
	}
}

// Validate checks that the configuration can produce a page.
func (c *Config) Validate() error {
	if c.OutputFile == "" {
		return errors.New("output file must not be empty")
	}
	if _, err := layers.ParseColoring(string(c.Coloring)); err != nil {
		return err
	}
	if c.HTTPTimeout <= 0 {
		return errors.New("HTTP timeout must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultSeconds int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds)
		}
	}
	return time.Duration(defaultSeconds)
}
