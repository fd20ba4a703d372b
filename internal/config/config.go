// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the YAML configuration an agent process starts
// from: listen address, the agent card to serve, and the paths of the
// shared registry and interaction log.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	a2a "github.com/go-a2a/agentmesh"
)

// Defaults applied when the file omits a field.
const (
	DefaultListenAddr   = "localhost:10000"
	DefaultRegistryPath = "agent_registry.json"
)

// Config is one agent process's configuration.
type Config struct {
	Server struct {
		// Addr is the host:port the agent listens on.
		Addr string `yaml:"addr"`
		// LogLevel selects the zap level ("debug", "info", ...).
		LogLevel string `yaml:"log_level"`
	} `yaml:"server"`

	// Agent is the card served under the well-known path. Its URL
	// defaults to http://{Server.Addr} when omitted.
	Agent a2a.AgentCard `yaml:"agent"`

	// RegistryPath is the JSON array of agent base URLs used for
	// discovery.
	RegistryPath string `yaml:"registry_path"`

	// InteractionLogPath, when set, enables the JSONL interaction log.
	InteractionLogPath string `yaml:"interaction_log_path"`
}

// Load reads and validates the configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()

	if err := cfg.Agent.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultListenAddr
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.RegistryPath == "" {
		c.RegistryPath = DefaultRegistryPath
	}
	if c.Agent.URL == "" {
		c.Agent.URL = "http://" + c.Server.Addr
	}
	if c.Agent.Version == "" {
		c.Agent.Version = a2a.Version
	}
}
