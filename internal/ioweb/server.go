// Package ioweb implements the HTTP gateway of breedersdb. Requests map
// one to one onto breeding.Store operations, failures are returned as
// structured JSON errors. This is an impure I/O package that implements
// contracts defined in pkg/.
package ioweb

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/breeding"
	"github.com/gnames/gnfmt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxBody limits request bodies.
const maxBody = 1 << 20

// Server routes requests to a Store.
type Server struct {
	store   breeding.Store
	router  chi.Router
	metrics *metrics
	enc     gnfmt.GNjson
}

// New creates a Server on the store.
func New(st breeding.Store) *Server {
	res := &Server{
		store:   st,
		metrics: newMetrics(),
		enc:     gnfmt.GNjson{},
	}
	res.router = res.routes()
	return res
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.instrument)

	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("pong"))
	})
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/cached_attributions", s.cachedAttributions)
		r.Post("/cached_attributions/rebuild", s.rebuildCache)
		r.Get("/attributions_view", s.attributionsView)
		r.Post("/attributions_view/refresh", s.refreshAttributionsView)
		r.Get("/marks_view", s.marksView)
		r.Post("/marks_view/refresh", s.refreshMarksView)
		r.Get("/next_free_label_id", s.nextFreeLabelID)
		r.Get("/attributes/{id}/can_change_data_type", s.canChangeDataType)

		r.Post("/{kind}", s.create)
		r.Get("/{kind}/{id}", s.get)
		r.Put("/{kind}/{id}", s.update)
		r.Patch("/{kind}/{id}", s.patch)
		r.Delete("/{kind}/{id}", s.delete)
	})
	return r
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP gateway listening", "address", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return ServeError(addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		30*time.Second)
	defer cancel()
	slog.Info("HTTP gateway shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return ServeError(addr, err)
	}
	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	bs, err := s.enc.Encode(v)
	if err != nil {
		slog.Error("Cannot encode response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(bs)
}
