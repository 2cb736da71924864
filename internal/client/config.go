package client

import (
	"encoding/json"
	"os"
)

// Config is the import client's JSON configuration file.
type Config struct {
	ServerURL      string `json:"server_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	if c.ServerURL == "" {
		c.ServerURL = "http://localhost:8080"
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 20
	}
	return &c, nil
}

func SaveConfig(path string, c *Config) error {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0600)
}
