// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	expjson "github.com/go-json-experiment/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	a2a "github.com/go-a2a/agentmesh"
)

// cardServer serves an agent card with the given name under the well-known
// path.
func cardServer(t *testing.T, name string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+a2a.AgentCardWellKnownPath, func(w http.ResponseWriter, r *http.Request) {
		card := a2a.AgentCard{
			Name:        name,
			Description: name + " test agent",
			Version:     "1.0.0",
			Skills: []a2a.AgentSkill{
				{ID: name + "-skill", Name: name},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, expjson.MarshalWrite(w, card))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLoadRegistry(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file yields empty registry", func(t *testing.T) {
		urls, err := LoadRegistry(filepath.Join(dir, "absent.json"), nil)
		require.NoError(t, err)
		assert.Empty(t, urls)
	})

	t.Run("malformed file yields empty registry", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
		urls, err := LoadRegistry(path, nil)
		require.NoError(t, err)
		assert.Empty(t, urls)
	})

	t.Run("non-list content yields empty registry", func(t *testing.T) {
		path := filepath.Join(dir, "object.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"not":"a list"}`), 0o644))
		urls, err := LoadRegistry(path, nil)
		require.NoError(t, err)
		assert.Empty(t, urls)
	})

	t.Run("valid file preserves order", func(t *testing.T) {
		path := filepath.Join(dir, "registry.json")
		require.NoError(t, os.WriteFile(path, []byte(`["http://localhost:10000","http://localhost:10001"]`), 0o644))
		urls, err := LoadRegistry(path, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"http://localhost:10000", "http://localhost:10001"}, urls)
	})
}

func TestListAgentCardsPreservesOrder(t *testing.T) {
	clock := cardServer(t, "clock_agent")
	greet := cardServer(t, "greeting_agent")

	d := NewDiscoverer(nil)
	cards, err := d.ListAgentCards(t.Context(), []string{clock.URL, greet.URL})
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "clock_agent", cards[0].Name)
	assert.Equal(t, "greeting_agent", cards[1].Name)
}

func TestListAgentCardsSkipsUnreachable(t *testing.T) {
	clock := cardServer(t, "clock_agent")
	greet := cardServer(t, "greeting_agent")

	d := NewDiscoverer(nil)
	cards, err := d.ListAgentCards(t.Context(), []string{clock.URL, "http://127.0.0.1:1", greet.URL})
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "clock_agent", cards[0].Name)
	assert.Equal(t, "greeting_agent", cards[1].Name)
}

func TestResolveCardFillsURL(t *testing.T) {
	srv := cardServer(t, "clock_agent")

	d := NewDiscoverer(nil)
	card, err := d.ResolveCard(t.Context(), srv.URL+"/")
	require.NoError(t, err)
	assert.Equal(t, srv.URL, card.URL)
}

func TestResolveCardRejectsInvalid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not a card"))
	}))
	defer srv.Close()

	d := NewDiscoverer(nil)
	_, err := d.ResolveCard(t.Context(), srv.URL)

	var pe *ProtocolError
	require.ErrorAs(t, err, &pe)
}
