// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package rpclog records agent-to-agent traffic as an append-only JSONL
// file. Each line captures one request or response together with the two
// endpoints involved, so a conversation between agents can be replayed
// after the fact.
package rpclog

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/go-a2a/agentmesh/internal/pool"
)

// Direction tells whether the logged payload was sent or received by the
// recording side.
type Direction string

const (
	DirectionSend    Direction = "send"
	DirectionReceive Direction = "receive"
)

// Entry is one line of the interaction log.
type Entry struct {
	Timestamp time.Time       `json:"timestamp"`
	Sender    string          `json:"sender"`
	Receiver  string          `json:"receiver"`
	Direction Direction       `json:"direction"`
	Data      json.RawMessage `json:"data"`
}

// Logger appends interaction entries to a single file. Logging is best
// effort: a failure to record an entry never fails the call that produced
// it, it is only reported through the diagnostic logger.
type Logger struct {
	mu     sync.Mutex
	f      *os.File
	logger *zap.Logger
}

// New opens (creating if necessary) the JSONL file at path for appending.
func New(path string, logger *zap.Logger) (*Logger, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &Logger{f: f, logger: logger}, nil
}

// Nop returns a Logger that discards every entry. Useful when interaction
// logging is not configured.
func Nop() *Logger {
	return &Logger{logger: zap.NewNop()}
}

// Record appends one entry describing payload travelling between sender and
// receiver. payload is marshaled with encoding/json; anything that cannot be
// marshaled is recorded as its quoted string form.
func (l *Logger) Record(sender, receiver string, direction Direction, payload any) {
	if l == nil || l.f == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		data, _ = json.Marshal(err.Error())
	}
	entry := Entry{
		Timestamp: time.Now().UTC(),
		Sender:    sender,
		Receiver:  receiver,
		Direction: direction,
		Data:      data,
	}

	buf := pool.Bytes.Get()
	defer pool.Bytes.Put(buf)
	if err := json.NewEncoder(buf).Encode(&entry); err != nil {
		l.logger.Warn("encode interaction entry", zap.Error(err))
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.f.Write(buf.Bytes()); err != nil {
		l.logger.Warn("write interaction entry", zap.Error(err))
	}
}

// Close closes the underlying file.
func (l *Logger) Close() error {
	if l == nil || l.f == nil {
		return nil
	}
	return l.f.Close()
}
