package remote

import (
	"context"
	"net/http"
	"net/rpc"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"epaper/pkg/command"
	"epaper/pkg/proto"
)

// Proxy serves dev over net/rpc on srv for the lifetime of the fx app.
func Proxy(dev proto.Control, srv *http.Server, logger *zap.Logger, lifecycle fx.Lifecycle) error {
	handler, err := Handler(dev)
	if err != nil {
		return err
	}
	srv.Handler = handler

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != http.ErrServerClosed {
					logger.With(zap.Error(err)).Fatal("proxy stopped")
				}
			}()
			logger.With(zap.String("addr", srv.Addr)).Info("proxy listening")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})

	return nil
}

// Handler returns an rpc server exposing dev.
func Handler(dev proto.Control) (http.Handler, error) {
	server := rpc.NewServer()
	if err := server.Register(&Service{dev: dev}); err != nil {
		return nil, err
	}
	return server, nil
}

type Service struct {
	dev proto.Control
}

func (s *Service) Send(req *SendRequest, _ *EmptyResponse) error {
	return s.dev.Send(command.New(command.Opcode(req.Opcode), req.Payload))
}

func (s *Service) Drain(timeout time.Duration, _ *EmptyResponse) error {
	return s.dev.Drain(timeout)
}

func (s *Service) Poll(req PollRequest, _ *EmptyResponse) error {
	return s.dev.Poll(req.Size, req.Timeout)
}

func (s *Service) Sync(timeout time.Duration, _ *EmptyResponse) error {
	return s.dev.Sync(timeout)
}

func (s *Service) Backlog(_ EmptyRequest, n *int) error {
	*n = s.dev.Backlog()
	return nil
}

func (s *Service) Stats(_ EmptyRequest, stats *proto.Stats) error {
	*stats = s.dev.Stats()
	return nil
}
