// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package client provides the outbound side of the mesh: a JSON-RPC
// client bound to one peer agent, a named connector that delegates text
// messages as tasks, and registry-driven agent discovery.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	a2a "github.com/go-a2a/agentmesh"
)

const (
	// defaultTimeout bounds one delegation round-trip.
	defaultTimeout = 30 * time.Second

	userAgent = "agentmesh/client " + a2a.Version
)

// Client is a JSON-RPC client bound to one peer agent's base URL.
type Client struct {
	hc  *http.Client
	url string
}

// NewClient creates a Client for the given base URL.
func NewClient(url string) (*Client, error) {
	if url == "" {
		return nil, fmt.Errorf("url cannot be empty")
	}
	return &Client{
		hc:  &http.Client{Timeout: defaultTimeout},
		url: strings.TrimRight(url, "/"),
	}, nil
}

// NewClientForCard creates a Client bound to the agent a card describes.
func NewClientForCard(card *a2a.AgentCard) (*Client, error) {
	if card == nil {
		return nil, fmt.Errorf("card cannot be nil")
	}
	return NewClient(card.URL)
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.hc = hc
	return c
}

// URL returns the peer base URL the client is bound to.
func (c *Client) URL() string {
	return c.url
}

// SendTask submits a task to the peer and returns the resulting task.
func (c *Client) SendTask(ctx context.Context, params a2a.TaskSendParams) (*a2a.Task, error) {
	return c.roundTrip(ctx, a2a.NewSendTaskRequest(params))
}

// GetTask retrieves the current state of a task from the peer.
func (c *Client) GetTask(ctx context.Context, params a2a.TaskQueryParams) (*a2a.Task, error) {
	return c.roundTrip(ctx, a2a.NewGetTaskRequest(params))
}

// roundTrip posts one request envelope and decodes the task out of the
// response envelope.
func (c *Client) roundTrip(ctx context.Context, rpcReq any) (*a2a.Task, error) {
	data, err := json.Marshal(rpcReq)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, &TransportError{URL: c.url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: c.url, Err: err}
	}

	var envelope struct {
		ID     any               `json:"id"`
		Result *a2a.Task         `json:"result"`
		Error  *a2a.JSONRPCError `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, &TransportError{URL: c.url, Status: resp.StatusCode}
		}
		return nil, &ProtocolError{URL: c.url, Reason: "invalid response body", Err: err}
	}

	if envelope.Error != nil {
		return nil, envelope.Error
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{URL: c.url, Status: resp.StatusCode}
	}
	if envelope.Result == nil {
		return nil, &ProtocolError{URL: c.url, Reason: "response carries no result"}
	}

	return envelope.Result, nil
}
