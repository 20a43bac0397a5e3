// Package server exposes the analysis pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/arnavsurve/minic/internal/compiler"
	"github.com/arnavsurve/minic/internal/logger"
)

const (
	maxUploadBytes  = 10 << 20
	shutdownTimeout = 5 * time.Second
)

var resultPrefixes = map[compiler.Mode]string{
	compiler.ModeLexical:  "Lexical analysis result for file content: ",
	compiler.ModeParser:   "Parser analysis result for file content: ",
	compiler.ModeSemantic: "Semantic analysis result for file content: ",
}

type Server struct {
	httpServer *http.Server
}

func New(addr string) *Server {
	s := &Server{}
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the request router. It is exported for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/analyze", analyzeHandler)
	return withRequestLog(mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server started", "addr", s.httpServer.Addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", s.httpServer.Addr, err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func enableCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
}

// analyzeHandler expects a multipart form with the source in the "file" part
// and the mode in the "type" field.
func analyzeHandler(w http.ResponseWriter, r *http.Request) {
	enableCORS(w)

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
		return
	case http.MethodPost:
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "malformed multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	mode, err := compiler.ParseMode(r.FormValue("type"))
	if err != nil {
		http.Error(w, "Invalid analysis type", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file part", http.StatusBadRequest)
		return
	}
	defer file.Close()

	report, err := compiler.RunReader(mode, file)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, compiler.ErrUnknownMode) {
			status = http.StatusBadRequest
		}
		logger.Error("Analysis failed", "mode", mode, "error", err)
		http.Error(w, "Error occurred: "+err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(resultPrefixes[mode] + report))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.LogRequest(r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
