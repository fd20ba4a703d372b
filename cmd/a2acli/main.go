// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Command a2acli is an interactive prompt that sends each line as a task
// to one agent and prints the reply.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	a2a "github.com/go-a2a/agentmesh"
	"github.com/go-a2a/agentmesh/client"
)

func run() error {
	agentURL := flag.String("agent", "http://localhost:10010", "base URL of the agent to talk to")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	card, err := client.NewDiscoverer(nil).ResolveCard(ctx, *agentURL)
	if err != nil {
		return err
	}
	fmt.Printf("Connected to %s (%s)\n", card.Name, card.URL)
	if card.Description != "" {
		fmt.Println(card.Description)
	}
	fmt.Println(`Type a message and press enter, or "quit" to exit.`)

	conn, err := client.NewConnector(card.Name, card.URL, nil)
	if err != nil {
		return err
	}

	session := a2a.NewSessionID()
	sc := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !sc.Scan() {
			fmt.Println()
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}

		task, err := conn.SendTask(ctx, "a2acli", line, session)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			if ctx.Err() != nil {
				return nil
			}
			continue
		}

		for i := len(task.History) - 1; i >= 0; i-- {
			if task.History[i].Role == a2a.RoleAgent {
				fmt.Println(task.History[i].FirstText())
				break
			}
		}
	}
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "a2acli:", err)
		os.Exit(1)
	}
}
