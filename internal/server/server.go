package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	httpapi "devnotes/internal/api/http"
	"devnotes/internal/app"
	"devnotes/internal/config"
)

// Server представляет HTTP сервер приложения вместе с планировщиком напоминаний
type Server struct {
	HTTPServer *http.Server
	HTTPAddr   string
	Listener   net.Listener

	// Контекст сервера; отменяется при shutdown для остановки планировщика
	Ctx    context.Context
	Cancel context.CancelFunc

	Config *config.Config
	App    *app.App

	unsubscribe func()
}

// NewServer создает сервер и открывает listener на порту из конфигурации
func NewServer(cfg *config.Config) (*Server, error) {
	if err := config.ApplyDefaults(cfg); err != nil {
		return nil, err
	}

	log.Printf("📋 Config loaded: HTTP port=%d, storage=%s", cfg.Server.PortHTTP, cfg.Storage.Driver)

	httpAddr := "0.0.0.0:" + strconv.Itoa(cfg.Server.PortHTTP)
	listener, err := net.Listen("tcp", httpAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", httpAddr, err)
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())

	return &Server{
		HTTPAddr: httpAddr,
		Listener: listener,
		Ctx:      serverCtx,
		Cancel:   serverCancel,
		Config:   cfg,
	}, nil
}

// Initialize инициализирует компоненты сервера (Storage → Service → Handler)
func (s *Server) Initialize() error {
	a, err := app.New(s.Ctx, s.Config, nil)
	if err != nil {
		return err
	}
	s.App = a

	// подписка до приема запросов, чтобы не пропустить события
	s.unsubscribe = a.Scheduler.Subscribe(a.Events)

	handler := httpapi.NewHandler(a.Notes, a.Tags, a.Scheduler, a.Clock)
	log.Println("Initialized HTTP handler")

	srvCfg := s.Config.Server
	s.HTTPServer = &http.Server{
		Handler:           httpapi.NewRouter(handler, s.Config.Gateway, srvCfg.AuthToken),
		ReadTimeout:       seconds(srvCfg.HTTPReadTimeout),
		WriteTimeout:      seconds(srvCfg.HTTPWriteTimeout),
		IdleTimeout:       seconds(srvCfg.HTTPIdleTimeout),
		ReadHeaderTimeout: seconds(srvCfg.HTTPReadHeaderTimeout),
	}

	if srvCfg.AuthToken == "" {
		log.Printf("⚠️  Warning: auth token is empty, API is not protected")
	}
	return nil
}

// Start запускает HTTP сервер и сверку разрешений в горутинах.
// Возвращает канал ошибок для отслеживания ошибок серверов
func (s *Server) Start() <-chan error {
	errChan := make(chan error, 2)

	go func() {
		interval := time.Duration(s.Config.Reminders.FallbackInterval) * time.Second
		if err := s.App.Scheduler.Reconcile(s.Ctx, interval); err != nil {
			errChan <- fmt.Errorf("reminder scheduler error: %w", err)
		}
	}()

	go func() {
		log.Printf("HTTP server listening on %s", s.HTTPAddr)
		log.Printf("CORS enabled for origins: %s", s.Config.Gateway.CORSAllowedOrigins)
		if err := s.HTTPServer.Serve(s.Listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	return errChan
}

// Shutdown выполняет graceful shutdown сервера
func (s *Server) Shutdown() error {
	log.Println("Starting graceful shutdown...")

	// Останавливаем планировщик до закрытия хранилищ
	s.Cancel()
	if s.unsubscribe != nil {
		s.unsubscribe()
	}

	shutdownTimeout := time.Duration(s.Config.Server.GracefulShutdownTimeout) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var shutdownErr error
	if s.HTTPServer != nil {
		if err := s.HTTPServer.Shutdown(ctx); err != nil {
			log.Println("Graceful shutdown timeout, forcing stop...")
			_ = s.HTTPServer.Close()
			shutdownErr = err
		} else {
			log.Println("HTTP server stopped gracefully")
		}
	}

	if s.App != nil {
		if err := s.App.Close(); err != nil {
			log.Printf("close storage: %v", err)
			shutdownErr = errors.Join(shutdownErr, err)
		}
	}
	return shutdownErr
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
