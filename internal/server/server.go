package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Server binds the JSON-RPC handler and the websocket hub to one HTTP
// listener.
type Server struct {
	node   *Node
	addr   string
	logger *zap.Logger
}

// NewServer builds the HTTP front end for a node.
func NewServer(node *Node, addr string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{node: node, addr: addr, logger: logger}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/", NewRPC(s.node))
	if s.node.hub != nil {
		mux.Handle("/ws", s.node.hub)
	}

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("rpc server listening", zap.String("addr", s.addr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("rpc server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if s.node.hub != nil {
			s.node.hub.Close()
		}
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
