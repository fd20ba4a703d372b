// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Command greetagent serves a leaf agent that crafts greetings.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	a2a "github.com/go-a2a/agentmesh"
	"github.com/go-a2a/agentmesh/internal/config"
	"github.com/go-a2a/agentmesh/server"
	"github.com/go-a2a/agentmesh/server/task"
)

func defaultConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Addr = "localhost:10001"
	cfg.Agent = a2a.AgentCard{
		Name:        "greeting_agent",
		Description: "Crafts a short greeting for the person you name.",
		Skills: []a2a.AgentSkill{
			{
				ID:       "craft-greeting",
				Name:     "craft greeting",
				Tags:     []string{"greeting", "hello", "welcome"},
				Examples: []string{"say hello to Ada"},
			},
		},
	}
	return cfg
}

// greet extracts a name from queries like "say hello to Ada" and returns
// a time-of-day appropriate greeting.
func greet(query string, now time.Time) string {
	salutation := "Good evening"
	switch h := now.Hour(); {
	case h < 12:
		salutation = "Good morning"
	case h < 18:
		salutation = "Good afternoon"
	}

	words := strings.Fields(query)
	for i, w := range words {
		if strings.EqualFold(w, "to") && i+1 < len(words) {
			name := strings.Trim(words[i+1], ".,!?")
			return fmt.Sprintf("%s, %s! Welcome.", salutation, name)
		}
	}
	return salutation + "! Welcome."
}

func run() error {
	configPath := flag.String("config", "", "agent config YAML (optional)")
	addr := flag.String("addr", "", "listen address, overrides config")
	flag.Parse()

	cfg := defaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
		cfg.Agent.URL = "http://" + *addr
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = "info"
	}
	if cfg.Agent.URL == "" {
		cfg.Agent.URL = "http://" + cfg.Server.Addr
	}
	if cfg.Agent.Version == "" {
		cfg.Agent.Version = a2a.Version
	}

	logger, err := config.NewLogger(cfg.Server.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	reasoner := server.ReasonerFunc(func(ctx context.Context, query, sessionID string) (string, error) {
		return greet(query, time.Now()), nil
	})

	tm, err := server.NewAgentTaskManager(task.NewInMemoryStore(), reasoner, logger)
	if err != nil {
		return err
	}
	srv, err := server.NewServer(server.Config{
		AgentCard:   &cfg.Agent,
		TaskManager: tm,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.ListenAndServe(ctx, cfg.Server.Addr)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "greetagent:", err)
		os.Exit(1)
	}
}
