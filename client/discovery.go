// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	expjson "github.com/go-json-experiment/json"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	a2a "github.com/go-a2a/agentmesh"
)

// fetchTimeout bounds one agent card fetch during discovery.
const fetchTimeout = 5 * time.Second

// LoadRegistry reads the JSON array of agent base URLs at path. A missing
// or malformed file yields an empty registry so a mesh can start before
// any agents are registered; only an unreadable file is an error.
func LoadRegistry(path string, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("agent registry not found, starting empty", zap.String("path", path))
			return nil, nil
		}
		return nil, fmt.Errorf("read agent registry %s: %w", path, err)
	}

	var urls []string
	if err := json.Unmarshal(data, &urls); err != nil {
		logger.Error("malformed agent registry, starting empty",
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, nil
	}
	return urls, nil
}

// Discoverer resolves agent cards for a set of registered base URLs.
type Discoverer struct {
	hc     *http.Client
	logger *zap.Logger
}

// NewDiscoverer creates a Discoverer with its own HTTP client.
func NewDiscoverer(logger *zap.Logger) *Discoverer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Discoverer{
		hc:     &http.Client{Timeout: fetchTimeout},
		logger: logger,
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func (d *Discoverer) WithHTTPClient(hc *http.Client) *Discoverer {
	d.hc = hc
	return d
}

// ListAgentCards fetches the agent card of every registered URL. Fetches
// run concurrently but results keep registry order. An agent that is down
// or serves an invalid card is skipped, not fatal.
func (d *Discoverer) ListAgentCards(ctx context.Context, urls []string) ([]*a2a.AgentCard, error) {
	slots := make([]*a2a.AgentCard, len(urls))

	g, ctx := errgroup.WithContext(ctx)
	for i, url := range urls {
		g.Go(func() error {
			card, err := d.ResolveCard(ctx, url)
			if err != nil {
				d.logger.Warn("skip unreachable agent", zap.String("url", url), zap.Error(err))
				return nil
			}
			slots[i] = card
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cards := make([]*a2a.AgentCard, 0, len(slots))
	for _, card := range slots {
		if card != nil {
			cards = append(cards, card)
		}
	}
	return cards, nil
}

// ResolveCard fetches the agent card served under the well-known path of
// the given base URL.
func (d *Discoverer) ResolveCard(ctx context.Context, baseURL string) (*a2a.AgentCard, error) {
	url := strings.TrimRight(baseURL, "/") + a2a.AgentCardWellKnownPath

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create card request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := d.hc.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{URL: url, Status: resp.StatusCode}
	}

	var card a2a.AgentCard
	if err := expjson.UnmarshalRead(resp.Body, &card); err != nil {
		return nil, &ProtocolError{URL: url, Reason: "invalid agent card", Err: err}
	}
	if card.URL == "" {
		card.URL = strings.TrimRight(baseURL, "/")
	}
	if err := card.Validate(); err != nil {
		return nil, &ProtocolError{URL: url, Reason: "invalid agent card", Err: err}
	}
	return &card, nil
}
