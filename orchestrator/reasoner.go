// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	a2a "github.com/go-a2a/agentmesh"
)

// DelegatingReasoner answers queries by delegating them to the discovered
// agent whose card best matches the query. It is a rule-based stand-in
// for a model-driven router and uses only the Router's tool surface.
type DelegatingReasoner struct {
	router *Router
	logger *zap.Logger
}

// NewDelegatingReasoner creates a DelegatingReasoner over the router.
func NewDelegatingReasoner(router *Router, logger *zap.Logger) (*DelegatingReasoner, error) {
	if router == nil {
		return nil, fmt.Errorf("router cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DelegatingReasoner{router: router, logger: logger}, nil
}

// Invoke picks the best-matching agent for query and relays its reply.
// When no agent matches, the reply names the agents it does know.
func (d *DelegatingReasoner) Invoke(ctx context.Context, query, sessionID string) (string, error) {
	name := d.pickAgent(query)
	if name == "" {
		agents := d.router.ListAgents()
		if len(agents) == 0 {
			return "No agents are available to handle this request.", nil
		}
		return fmt.Sprintf("I could not match that request to an agent. Known agents: %s.",
			strings.Join(agents, ", ")), nil
	}

	d.logger.Info("routing query",
		zap.String("agent", name),
		zap.String("session_id", sessionID),
	)
	return d.router.Delegate(ctx, name, query, sessionID)
}

// pickAgent scores every discovered card against the query and returns
// the name of the highest-scoring card, or "" when nothing matches. Ties
// go to the earlier card in discovery order.
func (d *DelegatingReasoner) pickAgent(query string) string {
	q := strings.ToLower(query)

	best, bestScore := "", 0
	for _, card := range d.router.Cards() {
		if score := scoreCard(card, q); score > bestScore {
			best, bestScore = card.Name, score
		}
	}
	return best
}

// scoreCard counts how many card keywords occur in the lowercased query.
// Name tokens weigh more than skill tokens.
func scoreCard(card *a2a.AgentCard, query string) int {
	score := 0
	for _, tok := range tokens(card.Name) {
		if strings.Contains(query, tok) {
			score += 2
		}
	}
	for _, skill := range card.Skills {
		for _, tok := range tokens(skill.Name) {
			if strings.Contains(query, tok) {
				score++
			}
		}
		for _, tag := range skill.Tags {
			if strings.Contains(query, strings.ToLower(tag)) {
				score++
			}
		}
	}
	return score
}

// stopwords are tokens too generic to identify an agent.
var stopwords = map[string]bool{
	"agent": true,
	"the":   true,
	"a":     true,
	"an":    true,
}

// tokens splits an identifier like "clock_agent" or "TellTimeAgent" into
// lowercased words, dropping stopwords.
func tokens(s string) []string {
	var words []string
	var cur strings.Builder

	flush := func() {
		if cur.Len() > 0 {
			if w := strings.ToLower(cur.String()); !stopwords[w] {
				words = append(words, w)
			}
			cur.Reset()
		}
	}

	for _, r := range s {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
		case r >= 'A' && r <= 'Z':
			flush()
			cur.WriteRune(r)
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return words
}
