// Package api serves read-only HTTP views of the token state and node metrics.
package api

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/handlers"
	"github.com/pegfee/pegfee-node/core/code"
	"github.com/pegfee/pegfee-node/core/node"
	"github.com/pegfee/pegfee-node/core/statistics"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendermint/tendermint/libs/log"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

type Response struct {
	Code   uint32      `json:"code"`
	Result interface{} `json:"result,omitempty"`
	Log    string      `json:"log,omitempty"`
}

type Server struct {
	node     *node.Node
	stats    *statistics.Data
	gatherer prometheus.Gatherer
	logger   log.Logger
	version  string
}

// NewServer creates the API over n. A nil gatherer disables /metrics.
func NewServer(n *node.Node, stats *statistics.Data, gatherer prometheus.Gatherer, logger log.Logger, version string) *Server {
	return &Server{
		node:     n,
		stats:    stats,
		gatherer: gatherer,
		logger:   logger.With("module", "api"),
		version:  version,
	}
}

// Handler returns the router with recovery, CORS and compression applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.StripSlashes)
	r.Use(s.measure)

	r.Get("/status", s.Status)
	r.Get("/balance/{address}", s.Balance)
	r.Get("/allowance/{owner}/{spender}", s.Allowance)
	r.Get("/frozen/{address}", s.Frozen)
	r.Get("/estimate", s.Estimate)
	r.Get("/events/{version}", s.Events)

	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	var handler http.Handler = r
	handler = handlers.CompressHandler(handler)
	handler = handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet}),
	)(handler)
	handler = handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{s.logger}),
		handlers.PrintRecoveryStack(true),
	)(handler)

	return handler
}

// measure logs every request and records its duration per route.
func (s *Server) measure(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		s.stats.SetApiTime(time.Since(start), route)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", ww.Status(), "duration", time.Since(start))
	})
}

type recoveryLogger struct {
	logger log.Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	l.logger.Error("api panic", "err", v)
}

// Run serves handler on addr until ctx is done.
func Run(ctx context.Context, addr string, handler http.Handler, logger log.Logger) error {
	listenAddr, err := parseListenAddress(addr)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              listenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", listenAddr)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting API server", "addr", listenAddr)
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		logger.Info("stopping API server")
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// parseListenAddress accepts both "tcp://host:port" and "host:port".
func parseListenAddress(addr string) (string, error) {
	if !strings.Contains(addr, "://") {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			return "", errors.Errorf("invalid listen address %q", addr)
		}
		return addr, nil
	}

	u, err := url.Parse(addr)
	if err != nil {
		return "", errors.Wrapf(err, "invalid listen address %q", addr)
	}

	if u.Scheme != "tcp" && u.Scheme != "http" {
		return "", errors.Errorf("unsupported listen address scheme %q", u.Scheme)
	}

	if _, _, err := net.SplitHostPort(u.Host); err != nil {
		return "", errors.Errorf("invalid listen address %q", addr)
	}

	return u.Host, nil
}

func writeJSON(w http.ResponseWriter, status int, response Response) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response)
}

func writeResult(w http.ResponseWriter, result interface{}) {
	writeJSON(w, http.StatusOK, Response{Code: code.OK, Result: result})
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, Response{Code: code.CodeOf(err), Log: err.Error()})
}
