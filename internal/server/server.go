// Package server связывает конфигурацию, хранилище, handlers и middleware
// в работающий HTTP сервер.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// shutdownTimeout время на корректное завершение активных запросов
const shutdownTimeout = 10 * time.Second

// Server инкапсулирует http.Server с graceful shutdown
type Server struct {
	logger *slog.Logger
	srv    *http.Server
}

// New создает Server поверх готового роутера
func New(logger *slog.Logger, port string, handler http.Handler) *Server {
	return &Server{
		logger: logger,
		srv: &http.Server{
			Addr:              ":" + port,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Run запускает сервер и блокируется до отмены контекста.
// После отмены дает активным запросам shutdownTimeout на завершение.
func (s *Server) Run(ctx context.Context) error {
	errC := make(chan error, 1)

	go func() {
		s.logger.Info("server listening", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()

	select {
	case err := <-errC:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}
