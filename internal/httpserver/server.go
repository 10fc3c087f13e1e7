// Package httpserver serves bin manifests and audio files to browser clients
package httpserver

import (
	"errors"
	"net/http"
	"os"
	"time"

	"koreanvocab/internal/catalog"
	"koreanvocab/internal/domain"
	"koreanvocab/internal/manifest"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// Server bundles the router with the catalog source it serves
type Server struct {
	r      *chi.Mux
	loader catalog.Loader
	logger *zap.Logger
}

// New constructs a Server serving manifests from loader and audio from audioDir.
// An empty audioDir disables /audio.
func New(loader catalog.Loader, audioDir string, origins []string, logger *zap.Logger) *Server {
	s := &Server{r: chi.NewRouter(), loader: loader, logger: logger}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(requestLogger(logger))
	s.r.Use(cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Range"},
		MaxAge:         300,
	}).Handler)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(30 * time.Second))

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/catalog/{bin}", s.handleCatalog)

	if audioDir != "" {
		files := http.StripPrefix("/audio/", http.FileServer(http.Dir(audioDir)))
		s.r.Get("/audio/*", files.ServeHTTP)
		s.r.Head("/audio/*", files.ServeHTTP)
	}

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Handler exposes the router (useful for tests and http.Server)
func (s *Server) Handler() http.Handler { return s.r }

// handleCatalog serves the manifest of a bin. The bin may be given by name
// or by manifest file name, e.g. /catalog/words_config.json.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "bin")
	bin, err := parseBinParam(name)
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown_bin")
		return
	}

	cat, err := s.loader.Load(r.Context(), bin)
	if err != nil {
		s.logger.Error("Failed to load catalog for HTTP client",
			zap.Error(err),
			zap.String("bin", string(bin)),
		)
		status := http.StatusBadGateway
		if errors.Is(err, os.ErrNotExist) {
			status = http.StatusNotFound
		}
		writeError(w, status, "catalog_unavailable")
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := manifest.Write(w, cat); err != nil {
		s.logger.Warn("Failed to write catalog response", zap.Error(err))
	}
}

func parseBinParam(name string) (domain.Bin, error) {
	for _, b := range domain.Bins {
		if name == b.ManifestFile() {
			return b, nil
		}
	}
	return domain.ParseBin(name)
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + code + `"}`))
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("HTTP request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", chimw.GetReqID(r.Context())),
			)
		})
	}
}
