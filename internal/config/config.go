// Package config loads the bot's configuration from an optional YAML file
// and the process environment. Environment variables win over file values.
package config

import (
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigFile is the YAML file consulted when present.
const DefaultConfigFile = "config.yaml"

type Config struct {
	Server ServerConfig `koanf:"server"`
	OpenAI OpenAIConfig `koanf:"openai"`
	Sheets SheetsConfig `koanf:"sheets"`
}

type ServerConfig struct {
	Port int `koanf:"port"`
}

type OpenAIConfig struct {
	APIKey string `koanf:"api_key"`
	Model  string `koanf:"model"`
}

type SheetsConfig struct {
	// SpreadsheetID is mandatory for logging. Its absence is reported at
	// append time, not at boot, so the bot can still answer messages.
	SpreadsheetID string `koanf:"spreadsheet_id"`

	// Worksheet selects a sheet by title. Empty means the first sheet.
	Worksheet string `koanf:"worksheet"`

	// CredsFile is the service-account keyfile tried after ambient identity.
	CredsFile string `koanf:"creds_file"`
}

// envKeys maps the environment variables the bot honors to config keys.
// Variables not listed here are ignored.
var envKeys = map[string]string{
	"PORT":              "server.port",
	"OPENAI_API_KEY":    "openai.api_key",
	"OPENAI_MODEL":      "openai.model",
	"SHEET_ID":          "sheets.spreadsheet_id",
	"SHEET_TAB":         "sheets.worksheet",
	"SHEETS_CREDS_FILE": "sheets.creds_file",
}

// Load reads DefaultConfigFile when present, then the environment.
func Load() (*Config, error) {
	return load(DefaultConfigFile)
}

func load(path string) (*Config, error) {
	k := koanf.New(".")

	// Optional YAML file first so the environment can override it
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Load environment variables; the callback drops anything not in envKeys
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return envKeys[s]
	}), nil); err != nil {
		return nil, err
	}

	// Default values
	if !k.Exists("server.port") {
		k.Set("server.port", 8080)
	}
	if !k.Exists("openai.model") {
		k.Set("openai.model", "gpt-4o-mini")
	}
	if !k.Exists("sheets.creds_file") {
		k.Set("sheets.creds_file", "service_account.json")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
