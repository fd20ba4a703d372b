// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Command clockagent serves a leaf agent that answers queries with the
// current time.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	a2a "github.com/go-a2a/agentmesh"
	"github.com/go-a2a/agentmesh/internal/config"
	"github.com/go-a2a/agentmesh/server"
	"github.com/go-a2a/agentmesh/server/task"
)

func defaultConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Addr = "localhost:10000"
	cfg.Agent = a2a.AgentCard{
		Name:        "clock_agent",
		Description: "Tells the current time.",
		Skills: []a2a.AgentSkill{
			{
				ID:       "tell-time",
				Name:     "tell time",
				Tags:     []string{"time", "clock", "now"},
				Examples: []string{"what time is it?"},
			},
		},
	}
	return cfg
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
		return "The current time is " + time.Now().Format("15:04:05 MST on Monday, January 2, 2006") + ".", nil
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
		fmt.Fprintln(os.Stderr, "clockagent:", err)
		os.Exit(1)
	}
}
