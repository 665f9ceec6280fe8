// Package server exposes the lawn engine as a local JSON API.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/julianstephens/lawnlog/internal/constants"
	"github.com/julianstephens/lawnlog/internal/lawn"
	"github.com/julianstephens/lawnlog/internal/logger"
)

type Server struct {
	svc    *lawn.Service
	router *mux.Router
	log    *log.Logger
}

func New(svc *lawn.Service) *Server {
	s := &Server{
		svc: svc,
		log: logger.With("server"),
	}
	s.router = s.setupRouter()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRouter() *mux.Router {
	router := mux.NewRouter()
	router.Use(s.logRequests)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/dashboard", s.getDashboard).Methods(http.MethodGet)
	api.HandleFunc("/phase", s.getPhase).Methods(http.MethodGet)
	api.HandleFunc("/next-step", s.getNextStep).Methods(http.MethodGet)
	api.HandleFunc("/schedule", s.getSchedule).Methods(http.MethodGet)
	api.HandleFunc("/tasks/{key}/toggle", s.toggleTask).Methods(http.MethodPost)
	api.HandleFunc("/advice", s.getAdvice).Methods(http.MethodGet)
	api.HandleFunc("/calendar", s.getCalendar).Methods(http.MethodGet)
	api.HandleFunc("/stats", s.getStats).Methods(http.MethodGet)
	api.HandleFunc("/activities", s.listActivities).Methods(http.MethodGet)
	api.HandleFunc("/activities", s.createActivity).Methods(http.MethodPost)
	api.HandleFunc("/activities/{id}", s.deleteActivity).Methods(http.MethodDelete)
	api.HandleFunc("/activities/{id}/restore", s.restoreActivity).Methods(http.MethodPost)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return router
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, req)
		s.log.Info("request", "method", req.Method, "path", req.URL.Path, "status", rec.status, "duration", time.Since(start))
	})
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  constants.ServerReadTimeout,
		WriteTimeout: constants.ServerWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Starting API server", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.log.Info("Shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ServerShutdownGrace)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
