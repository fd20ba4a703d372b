// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package rpclog

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAppendsJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "interactions.jsonl")
	l, err := New(path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })

	l.Record("orchestrator", "clock_agent", DirectionSend, map[string]string{"q": "what time is it"})
	l.Record("clock_agent", "orchestrator", DirectionReceive, map[string]string{"a": "12:00"})

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []Entry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e Entry
		require.NoError(t, json.Unmarshal(sc.Bytes(), &e))
		entries = append(entries, e)
	}
	require.NoError(t, sc.Err())
	require.Len(t, entries, 2)

	assert.Equal(t, "orchestrator", entries[0].Sender)
	assert.Equal(t, "clock_agent", entries[0].Receiver)
	assert.Equal(t, DirectionSend, entries[0].Direction)
	assert.JSONEq(t, `{"q":"what time is it"}`, string(entries[0].Data))
	assert.Equal(t, DirectionReceive, entries[1].Direction)
	assert.WithinDuration(t, time.Now().UTC(), entries[0].Timestamp, time.Minute)
}

func TestRecordReopensAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "interactions.jsonl")

	l, err := New(path, nil)
	require.NoError(t, err)
	l.Record("a", "b", DirectionSend, "first")
	require.NoError(t, l.Close())

	l, err = New(path, nil)
	require.NoError(t, err)
	l.Record("a", "b", DirectionSend, "second")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"first"`)
	assert.Contains(t, string(data), `"second"`)
}

func TestRecordConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "interactions.jsonl")
	l, err := New(path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Record("a", "b", DirectionSend, i)
		}()
	}
	wg.Wait()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	n := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e Entry
		require.NoError(t, json.Unmarshal(sc.Bytes(), &e))
		n++
	}
	require.NoError(t, sc.Err())
	assert.Equal(t, 20, n)
}

func TestNopDiscards(t *testing.T) {
	l := Nop()
	l.Record("a", "b", DirectionSend, "dropped")
	assert.NoError(t, l.Close())
}
