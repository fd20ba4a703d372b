// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	expjson "github.com/go-json-experiment/json"
	"go.uber.org/zap"

	a2a "github.com/go-a2a/agentmesh"
)

// Server exposes one agent over HTTP: its card on the discovery
// well-known path and the JSON-RPC task endpoint on the root path.
type Server struct {
	agentCard   *a2a.AgentCard
	taskManager TaskManager
	mux         *http.ServeMux
	logger      *zap.Logger
}

// Config holds configuration for the agent server.
type Config struct {
	// AgentCard is the metadata served on the discovery endpoint.
	AgentCard *a2a.AgentCard
	// TaskManager handles the task operations.
	TaskManager TaskManager
	// Logger receives request outcomes. Defaults to a no-op logger.
	Logger *zap.Logger
}

// NewServer creates a new agent server.
func NewServer(cfg Config) (*Server, error) {
	if cfg.AgentCard == nil {
		return nil, fmt.Errorf("agent card is required")
	}
	if err := cfg.AgentCard.Validate(); err != nil {
		return nil, fmt.Errorf("invalid agent card: %w", err)
	}
	if cfg.TaskManager == nil {
		return nil, fmt.Errorf("task manager is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	s := &Server{
		agentCard:   cfg.AgentCard,
		taskManager: cfg.TaskManager,
		mux:         http.NewServeMux(),
		logger:      cfg.Logger,
	}
	s.mux.HandleFunc("GET "+a2a.AgentCardWellKnownPath, s.handleAgentCard)
	s.mux.HandleFunc("POST /{$}", s.handleRPCRequest)

	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe blocks serving the agent on addr until ctx is canceled
// or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("agent listening",
		zap.String("addr", addr),
		zap.String("agent", s.agentCard.Name),
	)

	select {
	case <-ctx.Done():
		return srv.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

// handleAgentCard serves the agent card with empty optional fields
// omitted.
func (s *Server) handleAgentCard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := expjson.MarshalWrite(w, s.agentCard); err != nil {
		s.logger.Error("encode agent card", zap.Error(err))
	}
}

// handleRPCRequest handles the JSON-RPC task endpoint. Every failure,
// parse errors and internal ones alike, is answered with HTTP 400 and a
// structured error body so callers never see a bare transport failure.
func (s *Server) handleRPCRequest(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, nil, a2a.NewParseError(err.Error()))
		return
	}
	defer r.Body.Close()

	req, id, rpcErr := a2a.DecodeRequest(body)
	if rpcErr != nil {
		s.logger.Warn("rejected rpc request",
			zap.Int("code", rpcErr.Code),
			zap.String("reason", rpcErr.Message),
		)
		s.writeError(w, id, rpcErr)
		return
	}

	resp, err := s.dispatch(r.Context(), req)
	if err != nil {
		s.logger.Error("task handler failed", zap.Error(err))
		s.writeError(w, id, a2a.NewInternalError(err.Error()))
		return
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// dispatch routes a decoded request to the task manager. A panic in the
// manager surfaces as an error before any response bytes are written.
func (s *Server) dispatch(ctx context.Context, req a2a.A2ARequest) (resp any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("panic in task handler", zap.Any("panic", rec))
			err = fmt.Errorf("%v", rec)
		}
	}()

	switch req := req.(type) {
	case *a2a.SendTaskRequest:
		return s.taskManager.OnSendTask(ctx, req)
	case *a2a.GetTaskRequest:
		return s.taskManager.OnGetTask(ctx, req)
	default:
		return nil, fmt.Errorf("unrecognized request type %T", req)
	}
}

func (s *Server) writeError(w http.ResponseWriter, id any, rpcErr *a2a.JSONRPCError) {
	resp := a2a.JSONRPCResponse{
		JSONRPCMessage: a2a.NewJSONRPCMessage(id),
		Error:          rpcErr,
	}
	s.writeJSON(w, http.StatusBadRequest, resp)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", zap.Error(err))
	}
}
