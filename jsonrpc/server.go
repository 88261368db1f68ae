// Package jsonrpc is the ambient HTTP transport shell around the action
// dispatcher: a single JSON-RPC 2.0 endpoint multiplexing every action name
// onto the action.Registry, built on chi since this dispatcher fronts one
// multiplexed RPC method rather than many REST routes.
package jsonrpc

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	dispatcher "github.com/stellaranchor/action-dispatcher"
	"github.com/stellaranchor/action-dispatcher/action"
)

// Server is the JSON-RPC 2.0 HTTP transport over an action.Registry.
type Server struct {
	registry action.Registry
	repo     action.Repository
	hooks    *action.HookRegistry
	clock    action.Clock
	log      *logrus.Logger
}

// NewServer constructs a Server. hooks and clock may be nil.
func NewServer(registry action.Registry, repo action.Repository, hooks *action.HookRegistry, clock action.Clock, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{registry: registry, repo: repo, hooks: hooks, clock: clock, log: log}
}

// Router builds the chi router exposing POST /rpc.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Post("/rpc", s.handleRPC)
	return r
}

func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	var req dispatcher.RPCRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, nil, &dispatcher.RPCError{Code: -32700, Message: "parse error"})
		return
	}

	entry := s.log.WithFields(logrus.Fields{"method": req.Method})

	h, ok := s.registry.Lookup(req.Method)
	if !ok {
		entry.Warn("unknown action")
		s.writeError(w, req.ID, &dispatcher.RPCError{Code: -32601, Message: "method not found"})
		return
	}

	resp, err := action.Handle(r.Context(), s.repo, h, req.Params, s.clock, s.hooks)
	if err != nil {
		entry.WithError(err).Warn("action dispatch failed")
		s.writeError(w, req.ID, dispatcher.NewRPCError(err))
		return
	}

	entry.WithField("status", resp.Status).Info("action dispatched")
	s.writeResult(w, req.ID, resp)
}

func (s *Server) writeResult(w http.ResponseWriter, id json.RawMessage, result any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(dispatcher.RPCResponse{JSONRPC: "2.0", ID: id, Result: result})
}

func (s *Server) writeError(w http.ResponseWriter, id json.RawMessage, rpcErr *dispatcher.RPCError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(dispatcher.RPCResponse{JSONRPC: "2.0", ID: id, Error: rpcErr})
}

// ListenAndServe starts the HTTP server on addr with sane read/write
// timeouts, blocking until ctx is cancelled or the server errors.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
