// internal/server/server.go
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"crypto-price-tracker/internal/tracker"
	"crypto-price-tracker/pkg/logger"
)

// StateSource источник наблюдаемого состояния трекера
type StateSource interface {
	State() tracker.TrackerState
	GetStats() map[string]interface{}
	IsRunning() bool
}

// Server - HTTP сервер для чтения состояния и метрик трекера
type Server struct {
	source  StateSource
	version string
	server  *http.Server
}

// NewServer создает новый HTTP сервер
func NewServer(source StateSource, port int, version string) *Server {
	s := &Server{
		source:  source,
		version: version,
	}

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return s
}

// Handler возвращает маршрутизатор сервера
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/state", s.handleState)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/health", s.handleHealthCheck)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// Start запускает сервер в фоне
func (s *Server) Start() {
	logger.Info("🚀 HTTP сервер запущен на %s", s.server.Addr)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("❌ Ошибка HTTP сервера: %v", err)
		}
	}()
}

// Stop останавливает сервер
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// handleState отдает текущее состояние трекера
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.source.State()); err != nil {
		logger.Error("❌ Не удалось сериализовать состояние: %v", err)
	}
}

// handleStats отдает статистику трекера
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.source.GetStats()); err != nil {
		logger.Error("❌ Не удалось сериализовать статистику: %v", err)
	}
}

// handleHealthCheck обрабатывает запросы проверки здоровья
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	response := map[string]interface{}{
		"status":  "ok",
		"running": s.source.IsRunning(),
		"time":    time.Now().Format(time.RFC3339),
		"version": s.version,
	}

	json.NewEncoder(w).Encode(response)
}
