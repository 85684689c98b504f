package web

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sentiviz/internal/connect"
	"sentiviz/internal/controller"
	"sentiviz/internal/service"
)

// Server отдает страницы графиков, PNG и исходные данные по HTTP
type Server struct {
	ctrl    *controller.ChartController
	dataDir string
	logger  *log.Logger
}

func NewServer(ctrl *controller.ChartController, dataDir string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{ctrl: ctrl, dataDir: dataDir, logger: logger}
}

// noCache отключает кеширование, страницы каждый раз рисуются заново
func noCache(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		h.ServeHTTP(w, r)
	})
}

// Handler возвращает маршруты сервера
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.pageHandler(service.Kinds...))
	for _, kind := range service.Kinds {
		mux.HandleFunc("GET /"+string(kind), s.pageHandler(kind))
	}
	mux.HandleFunc("GET /chart/{file}", s.handlePNG)
	if s.dataDir != "" {
		mux.Handle("GET /data/", http.StripPrefix("/data/", http.FileServer(http.Dir(s.dataDir))))
	}
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Server is running"))
	})
	return noCache(mux)
}

func (s *Server) pageHandler(kinds ...service.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := s.ctrl.BuildPage(r.Context(), s.ctrl.Page().Title, kinds...)
		if err != nil {
			s.fail(w, err)
			return
		}

		var buf bytes.Buffer
		if err := page.Render(&buf); err != nil {
			s.fail(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(buf.Bytes())
	}
}

func (s *Server) handlePNG(w http.ResponseWriter, r *http.Request) {
	name, ok := strings.CutSuffix(r.PathValue("file"), ".png")
	if !ok {
		http.NotFound(w, r)
		return
	}
	kind, err := service.ParseKind(name)
	if err != nil {
		s.fail(w, err)
		return
	}

	data, err := s.ctrl.GenerateChart(r.Context(), kind)
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(data)
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrUnknownChart):
		status = http.StatusNotFound
	case errors.Is(err, connect.ErrMountNotFound), errors.Is(err, os.ErrNotExist):
		status = http.StatusBadRequest
	}
	s.logger.Printf("Ошибка запроса: %v", err)
	http.Error(w, err.Error(), status)
}

// ListenAndServe запускает сервер до отмены ctx
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if s.dataDir != "" {
		abs, err := filepath.Abs(s.dataDir)
		if err != nil {
			return err
		}
		if _, err := os.Stat(abs); err != nil {
			return err
		}
		s.logger.Printf("Serving data files from: %s", abs)
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Printf("Starting server on %s", addr)
		errc <- server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
