package serv

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-http-utils/headers"
	"github.com/google/uuid"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/query"
)

const (
	routeList          = "/api/v1/records"
	routeNotifications = "/api/v1/notifications"
	routeAggregate     = "/api/v1/records/aggregate"
	routeHealth        = "/health"
)

type requestIDKey struct{}

// Server is the HTTP entrypoint wrapping a query.Engine, mirroring the
// teacher's graphjinService: one struct holding the config, logger, and
// engine a request handler closes over.
type Server struct {
	conf   *Config
	log    *zap.SugaredLogger
	engine *query.Engine
	srv    *http.Server
}

// New builds a Server ready to Run.
func New(conf *Config, log *zap.SugaredLogger, engine *query.Engine) *Server {
	return &Server{conf: conf, log: log, engine: engine}
}

// Run starts the HTTP server and blocks until it shuts down, mirroring
// the teacher's startHTTP: an idle-connections channel closed from a
// SIGINT handler, a listener opened before serving.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	s.routes(mux)

	c := cors.New(cors.Options{
		AllowedOrigins: s.conf.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{headers.ContentType, headers.Authorization, "X-Request-Id"},
	})

	s.srv = &http.Server{
		Addr:              s.conf.Server.Addr,
		Handler:           c.Handler(requestIDMiddleware(s.log)(mux)),
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		if err := s.srv.Shutdown(context.Background()); err != nil {
			s.log.Warnw("shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	l, err := net.Listen("tcp", s.conf.Server.Addr)
	if err != nil {
		return err
	}

	s.log.Infow("quickslice listening", "addr", s.conf.Server.Addr)
	if err := s.srv.Serve(l); err != nil && err != http.ErrServerClosed {
		return err
	}
	<-idleConnsClosed
	return nil
}

func (s *Server) routes(mux *http.ServeMux) {
	mux.Handle(routeHealth, s.healthHandler())
	mux.Handle(routeList, s.listHandler())
	mux.Handle(routeNotifications, s.notificationsHandler())
	mux.Handle(routeAggregate, s.aggregateHandler())
}

func (s *Server) healthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(headers.ContentType, "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
}

// requestIDMiddleware stamps every request with a correlation id for log
// lines, the way the teacher logs request-scoped fields per call.
func requestIDMiddleware(log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-Id")
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set("X-Request-Id", id)
			ctx := context.WithValue(r.Context(), requestIDKey{}, id)
			start := time.Now()
			next.ServeHTTP(w, r.WithContext(ctx))
			log.Infow("request",
				"request_id", id,
				"method", r.Method,
				"path", r.URL.Path,
				"duration", time.Since(start),
			)
		})
	}
}
