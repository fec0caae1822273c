package config

import (
	"os"
	"strings"
)

type Config struct {
	HTTPAddr string

	// AdminKey gates the /api/admin routes. Empty means the admin surface
	// answers 500 until it is configured.
	AdminKey string

	// JournalPath points at the JSON-lines journal file. Empty disables
	// persistence (in-memory only).
	JournalPath string

	LogLevel string
}

func FromEnv() (Config, error) {
	var c Config
	c.HTTPAddr = strings.TrimSpace(os.Getenv("HTTP_ADDR"))
	if c.HTTPAddr == "" {
		c.HTTPAddr = ":3000"
	}

	c.AdminKey = strings.TrimSpace(os.Getenv("ADMIN_KEY"))
	c.JournalPath = strings.TrimSpace(os.Getenv("JOURNAL_PATH"))

	c.LogLevel = strings.TrimSpace(os.Getenv("LOG_LEVEL"))
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	return c, nil
}
