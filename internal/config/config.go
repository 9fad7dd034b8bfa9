// Package config loads potdrill settings from an HCL file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the complete potdrill configuration
type Config struct {
	LogLevel string         `hcl:"log_level,optional"`
	LogFile  string         `hcl:"log_file,optional"`
	Drill    DrillSettings  `hcl:"drill,block"`
	Server   ServerSettings `hcl:"server,block"`
}

// DrillSettings controls scenario generation and display
type DrillSettings struct {
	Seed     int64  `hcl:"seed,optional"` // 0 means seed from entropy
	Currency string `hcl:"currency,optional"`
}

// ServerSettings contains WebSocket server settings
type ServerSettings struct {
	Address string `hcl:"address,optional"`
	Port    int    `hcl:"port,optional"`
}

// fileConfig mirrors Config with optional blocks so a file may omit them.
type fileConfig struct {
	LogLevel string          `hcl:"log_level,optional"`
	LogFile  string          `hcl:"log_file,optional"`
	Drill    *DrillSettings  `hcl:"drill,block"`
	Server   *ServerSettings `hcl:"server,block"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		LogLevel: "info",
		LogFile:  "potdrill.log",
		Drill: DrillSettings{
			Currency: "kr",
		},
		Server: ServerSettings{
			Address: "localhost",
			Port:    8080,
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults; missing values inside a present file are filled from them.
func Load(filename string) (*Config, error) {
	if filename == "" {
		return Default(), nil
	}
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := Default()
	if fc.LogLevel != "" {
		config.LogLevel = fc.LogLevel
	}
	if fc.LogFile != "" {
		config.LogFile = fc.LogFile
	}
	if fc.Drill != nil {
		config.Drill.Seed = fc.Drill.Seed
		if fc.Drill.Currency != "" {
			config.Drill.Currency = fc.Drill.Currency
		}
	}
	if fc.Server != nil {
		if fc.Server.Address != "" {
			config.Server.Address = fc.Server.Address
		}
		if fc.Server.Port != 0 {
			config.Server.Port = fc.Server.Port
		}
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	if len(c.Drill.Currency) > 8 {
		return fmt.Errorf("currency label too long: %q", c.Drill.Currency)
	}

	return nil
}

// ServerAddress returns the full listen address
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
