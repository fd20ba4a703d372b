// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Command orchestrator discovers the registered agents and serves a
// routing agent that delegates incoming queries to them.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	a2a "github.com/go-a2a/agentmesh"
	"github.com/go-a2a/agentmesh/client"
	"github.com/go-a2a/agentmesh/internal/config"
	"github.com/go-a2a/agentmesh/internal/rpclog"
	"github.com/go-a2a/agentmesh/orchestrator"
	"github.com/go-a2a/agentmesh/server"
	"github.com/go-a2a/agentmesh/server/task"
)

func defaultConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Addr = "localhost:10010"
	cfg.RegistryPath = config.DefaultRegistryPath
	cfg.InteractionLogPath = "interactions.jsonl"
	cfg.Agent = a2a.AgentCard{
		Name:        "orchestrator",
		Description: "Routes user queries to the discovered agents.",
		Skills: []a2a.AgentSkill{
			{
				ID:   "route",
				Name: "route queries",
				Tags: []string{"routing", "delegation"},
			},
		},
	}
	return cfg
}

func run() error {
	configPath := flag.String("config", "", "agent config YAML (optional)")
	addr := flag.String("addr", "", "listen address, overrides config")
	registry := flag.String("registry", "", "agent registry JSON, overrides config")
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
	if *registry != "" {
		cfg.RegistryPath = *registry
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	urls, err := client.LoadRegistry(cfg.RegistryPath, logger)
	if err != nil {
		return err
	}
	cards, err := client.NewDiscoverer(logger).ListAgentCards(ctx, urls)
	if err != nil {
		return err
	}
	for _, card := range cards {
		logger.Info("discovered agent",
			zap.String("name", card.Name),
			zap.String("url", card.URL),
		)
	}

	log := rpclog.Nop()
	if cfg.InteractionLogPath != "" {
		log, err = rpclog.New(cfg.InteractionLogPath, logger)
		if err != nil {
			return err
		}
		defer log.Close()
	}

	router, err := orchestrator.NewRouter(cfg.Agent.Name, cards, log, logger)
	if err != nil {
		return err
	}
	reasoner, err := orchestrator.NewDelegatingReasoner(router, logger)
	if err != nil {
		return err
	}

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

	return srv.ListenAndServe(ctx, cfg.Server.Addr)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "orchestrator:", err)
		os.Exit(1)
	}
}
