// Package subscribe serves a generated client configuration over HTTP so
// sing-box clients can import it as a remote profile.
package subscribe

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 5 * time.Second

// Auth failures tolerated per client address per window.
const (
	authFailureLimit  = 10
	authFailureWindow = time.Minute
)

// Options configure the subscription server.
type Options struct {
	// Listen is the host:port to bind.
	Listen string
	// Path is where the profile is served (e.g. "/sub").
	Path string
	// User/Password gate the profile behind basic auth when User is
	// non-empty.
	User     string
	Password string
	// ProfileName is advertised to importing clients.
	ProfileName string
	// Payload is the client configuration to serve.
	Payload []byte
	// CacheTTL, when positive, is advertised as Cache-Control max-age so
	// clients space out their refreshes.
	CacheTTL time.Duration
	Logger   *slog.Logger
}

// Server is a subscription endpoint with request metrics and brute-force
// throttling.
type Server struct {
	opts    Options
	log     *slog.Logger
	router  chi.Router
	metrics *metrics
	limiter *rateLimiter
}

// New builds the server and its routes.
func New(opts Options) *Server {
	if opts.Path == "" {
		opts.Path = "/sub"
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	s := &Server{
		opts:    opts,
		log:     opts.Logger,
		metrics: newMetrics(),
		limiter: newRateLimiter(authFailureLimit, authFailureWindow),
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.instrument)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", s.metrics.handler())
	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get(opts.Path, s.serveProfile)
		r.Head(opts.Path, s.serveProfile)
	})

	s.router = r
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Listen,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("subscription server listening",
			"addr", s.opts.Listen, "path", s.opts.Path, "auth", s.opts.User != "")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.opts.User == "" {
			next.ServeHTTP(w, r)
			return
		}

		client := clientKey(r)
		if s.limiter.blocked(client) {
			s.log.Warn("auth throttled", "client", client)
			http.Error(w, "too many attempts", http.StatusTooManyRequests)
			return
		}

		user, pass, ok := r.BasicAuth()
		if !ok || !constantEq(user, s.opts.User) || !constantEq(pass, s.opts.Password) {
			s.limiter.fail(client)
			w.Header().Set("WWW-Authenticate", `Basic realm="subscription"`)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func constantEq(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (s *Server) serveProfile(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if s.opts.ProfileName != "" {
		w.Header().Set("Profile-Title", s.opts.ProfileName)
	}
	if s.opts.CacheTTL > 0 {
		w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(s.opts.CacheTTL.Seconds())))
	}
	if r.Method == http.MethodHead {
		return
	}
	w.Write(s.opts.Payload)
}
