package net

import (
	"context"
	"fmt"
	"net"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/peterkuimelis/neondominance/internal/config"
)

// Server hosts one independent session per TCP connection. The client plays
// the Runner; the Corporation is the built-in AI.
type Server struct {
	Addr   string // e.g. ":7777"
	Config config.Config
	Log    *zap.Logger
}

func (s *Server) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

// Run listens on Addr and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then closes every
// open connection and waits for their handlers. It returns nil after a
// cancellation and the accept error if ln fails or is closed by someone
// else.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger().Info("listening", zap.String("addr", ln.Addr().String()))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-ctx.Done()
		_ = ln.Close()
		return nil
	})
	g.Go(func() error {
		for {
			conn, err := ln.Accept()
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				// A listener closed behind our back still fails the
				// group, which cancels ctx and releases the handlers.
				return fmt.Errorf("accept: %w", err)
			}
			g.Go(func() error {
				s.handle(ctx, conn)
				return nil
			})
		}
	})
	return g.Wait()
}

func (s *Server) handle(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	z := s.logger().With(zap.String("conn", uuid.NewString()), zap.String("remote", conn.RemoteAddr().String()))
	z.Info("client connected")
	if err := ServeSession(NewJSONCodec(conn), s.Config, z); err != nil && ctx.Err() == nil {
		z.Warn("connection ended", zap.Error(err))
		return
	}
	z.Info("client disconnected")
}
