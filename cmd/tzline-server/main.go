// Package main implements the tzline web server: an interactive timezone
// comparison page backed by a JSON API and a websocket session per browser tab.
package main

import (
	"context"
	"embed"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/codeGROOVE-dev/tzline/pkg/client"
	"github.com/codeGROOVE-dev/tzline/pkg/config"
	"github.com/codeGROOVE-dev/tzline/pkg/registry"
	"github.com/codeGROOVE-dev/tzline/pkg/respcache"
	"github.com/google/uuid"
)

//go:embed templates/home.html
var homeTemplate string

//go:embed static/*
var staticFiles embed.FS

var (
	port       = flag.String("port", "", "Port for web server (or set TZLINE_PORT)")
	configPath = flag.String("config", "", "YAML config file (or set TZLINE_CONFIG)")
	rateLimit  = flag.Int("rate-limit", 120, "API requests per minute per IP")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	version    = flag.Bool("version", false, "Show version")
)

const rateWindow = time.Minute

type rateLimiter struct {
	requests  map[string][]time.Time
	now       func() time.Time
	lastSweep time.Time
	limit     int
	mu        sync.Mutex
}

func newRateLimiter(limit int) *rateLimiter {
	return &rateLimiter{
		requests: make(map[string][]time.Time),
		now:      time.Now,
		limit:    limit,
	}
}

// sweep drops addresses with no requests inside the window.
func (rl *rateLimiter) sweep(cutoff time.Time) {
	for ip, times := range rl.requests {
		if len(times) == 0 || !times[len(times)-1].After(cutoff) {
			delete(rl.requests, ip)
		}
	}
}

func (rl *rateLimiter) allow(ip string) bool {
	if rl.limit <= 0 {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	cutoff := now.Add(-rateWindow)
	if now.Sub(rl.lastSweep) >= rateWindow {
		rl.sweep(cutoff)
		rl.lastSweep = now
	}

	var valid []time.Time
	for _, t := range rl.requests[ip] {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}

	if len(valid) >= rl.limit {
		rl.requests[ip] = valid
		return false
	}

	rl.requests[ip] = append(valid, now)
	return true
}

func main() {
	flag.Parse()

	if *version {
		fmt.Println("tzline server v1.0.0")
		return
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *configPath == "" {
		*configPath = os.Getenv("TZLINE_CONFIG")
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.ApplyEnv(); err != nil {
		logger.Error("Invalid environment", "error", err)
		os.Exit(1)
	}
	if *port != "" {
		cfg.Port = *port
	}

	logger.Info("Server configuration",
		"port", cfg.Port,
		"verbose", *verbose,
		"config", *configPath,
		"default_timezones", cfg.Timezones,
		"cache_ttl", cfg.CacheTTL,
		"rate_limit", *rateLimit)

	server := newServer(cfg, registry.Default(), logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Shutdown failed", "error", err)
	}
	server.closeSessions()
	logger.Info("Server stopped")
}

type server struct {
	cfg      *config.Config
	registry *registry.Registry
	cache    *respcache.Cache
	limiter  *rateLimiter
	logger   *slog.Logger
	now      func() time.Time
	sessions *sessionSet
}

func newServer(cfg *config.Config, reg *registry.Registry, logger *slog.Logger) *server {
	return &server{
		cfg:      cfg,
		registry: reg,
		cache:    respcache.New(cfg.CacheSize, cfg.CacheTTL, logger),
		limiter:  newRateLimiter(*rateLimit),
		logger:   logger,
		now:      time.Now,
		sessions: newSessionSet(),
	}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleHome)
	mux.HandleFunc("GET /api/v1/timezones", s.limit(s.handleTimezones))
	mux.HandleFunc("POST /api/v1/compare", s.limit(s.handleCompare))
	mux.HandleFunc("GET /api/v1/ws", s.handleWS)
	mux.Handle("/static/", http.FileServer(http.FS(staticFiles)))
	return s.wrap(mux)
}

func (s *server) wrap(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		defer func() {
			if err := recover(); err != nil {
				const size = 64 << 10
				buf := make([]byte, size)
				buf = buf[:runtime.Stack(buf, false)]

				s.logger.Error("PANIC: Request handler crashed",
					"error", err,
					"path", r.URL.Path,
					"method", r.Method,
					"request_id", requestID,
					"client_ip", clientIP(r),
					"user_agent", r.Header.Get("User-Agent"),
					"stack", string(buf))
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
		}()

		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		w.Header().Set("Permissions-Policy", "geolocation=(), microphone=(), camera=(), payment=(), usb=(), bluetooth=()")
		w.Header().Set("Content-Security-Policy", cspPolicy())

		if strings.HasPrefix(r.URL.Path, "/api/") {
			w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
			w.Header().Set("Pragma", "no-cache")
			w.Header().Set("Expires", "0")
		} else if strings.HasPrefix(r.URL.Path, "/static/") {
			w.Header().Set("Cache-Control", "public, max-age=3600")
		}

		handler.ServeHTTP(w, r)
	})
}

// limit applies the per-IP rate limiter to an API handler.
func (s *server) limit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.allow(clientIP(r)) {
			s.logger.Warn("Rate limit exceeded",
				"request_id", w.Header().Get("X-Request-ID"),
				"client_ip", clientIP(r),
				"path", r.URL.Path)
			s.writeError(w, http.StatusTooManyRequests, "Rate limit exceeded",
				"Too many requests from this address. Please wait a minute.", client.CodeRateLimited)
			return
		}
		next(w, r)
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
