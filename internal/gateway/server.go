package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/bffaitrainer/bff-middleware/internal/agent"
	"github.com/bffaitrainer/bff-middleware/internal/config"
	"github.com/bffaitrainer/bff-middleware/internal/integration"
	"github.com/bffaitrainer/bff-middleware/internal/logging"
)

// serviceName identifies this gateway in health and docs responses.
const serviceName = "bff-middleware"

// Server is the BFF middleware HTTP gateway. All state is assembled once at
// construction and immutable afterwards; concurrent requests share nothing
// mutable.
type Server struct {
	cfg  config.Config
	gate Gate
	log  *logging.Logger

	dispatcher *agent.Dispatcher
	ocoya      *integration.Ocoya
	systeme    *integration.Systeme
	gmail      *integration.Gmail
	youtube    *integration.YouTube
	videoai    *integration.VideoAI
	oauth      *integration.OAuth

	httpServer *http.Server
}

// New assembles the gateway: adapters built from config, dispatcher over the
// CRM and social adapters, gate policy resolved once.
func New(cfg config.Config, log *logging.Logger) *Server {
	glog := log.Sub("gateway")
	ocoya := integration.NewOcoya(cfg.Providers, log)
	systeme := integration.NewSysteme(cfg.Providers, log)

	return &Server{
		cfg:        cfg,
		gate:       ResolveGate(cfg.Auth),
		log:        glog,
		dispatcher: agent.NewDispatcher(systeme, ocoya, log),
		ocoya:      ocoya,
		systeme:    systeme,
		gmail:      integration.NewGmail(cfg.Providers, cfg.Report, log),
		youtube:    integration.NewYouTube(cfg.Providers, log),
		videoai:    integration.NewVideoAI(cfg.Providers, log),
		oauth:      integration.NewOAuth(cfg.OAuth, log),
	}
}

// Handler builds the complete routed, middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.registerHTTPRoutes(mux)
	return withMiddleware(mux, s.log, s.gate, s.cfg.Gateway.AllowedOrigins)
}

// resolveBindAddr computes the listen address from config.
func resolveBindAddr(cfg config.GatewayConfig) string {
	switch cfg.Bind {
	case "loopback":
		return fmt.Sprintf("127.0.0.1:%d", cfg.Port)
	case "lan", "auto":
		return fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	case "custom":
		host := cfg.CustomBindHost
		if host == "" {
			host = "0.0.0.0"
		}
		return fmt.Sprintf("%s:%d", host, cfg.Port)
	default:
		return fmt.Sprintf("127.0.0.1:%d", cfg.Port)
	}
}

// Start begins listening for HTTP connections. It blocks until the context
// is cancelled or an error occurs.
func (s *Server) Start(ctx context.Context) error {
	addr := resolveBindAddr(s.cfg.Gateway)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		BaseContext:  func(l net.Listener) context.Context { return ctx },
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s.log.Info().
		Str("addr", ln.Addr().String()).
		Str("bind", s.cfg.Gateway.Bind).
		Bool("gateEnforced", s.gate.Enforced).
		Msg("gateway server starting")

	if s.gate.Enforced && s.gate.Secret == "" {
		s.log.Warn().Msg("gate enforcement is on with no key configured; every gated request will be rejected")
	}

	// Shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		s.log.Info().Msg("shutting down gateway server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.httpServer.Shutdown(shutdownCtx)
	}()

	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Addr returns the server's listen address, or empty string if not started.
func (s *Server) Addr() string {
	if s.httpServer != nil {
		return s.httpServer.Addr
	}
	return ""
}
