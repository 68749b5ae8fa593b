// Package api serves a read-only HTTP view over a loaded param bank:
// table listings, per-table row listings, and decoded entry field values.
package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/ashenlab/paramforge/pkg/bank"
)

// Server holds the API server state
type Server struct {
	bank    *bank.Bank
	config  ServerConfig
	metrics *Metrics
	log     *logrus.Logger
}

// NewServer creates a new API server over a loaded bank
func NewServer(b *bank.Bank, config ServerConfig, metrics *Metrics, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.New()
	}
	return &Server{
		bank:    b,
		config:  config,
		metrics: metrics,
		log:     log,
	}
}

// Router builds the chi router with all routes configured
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/health", s.metrics.InstrumentHandler("GET", "/health", s.handleHealth))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/tables", s.metrics.InstrumentHandler("GET", "/api/v1/tables", s.handleListTables))
		r.Get("/tables/{entry}", s.metrics.InstrumentHandler("GET", "/api/v1/tables/{entry}", s.handleGetTable))
		r.Get("/tables/{entry}/entries/{id}", s.metrics.InstrumentHandler("GET", "/api/v1/tables/{entry}/entries/{id}", s.handleGetEntry))
	})

	return r
}

// StartServer starts the HTTP server with all routes configured
func StartServer(b *bank.Bank, config ServerConfig, log *logrus.Logger) error {
	metrics := NewMetrics()
	server := NewServer(b, config, metrics, log)
	server.refreshBankStats()

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	server.log.WithField("addr", addr).Info("starting param browse API")
	return http.ListenAndServe(addr, server.Router())
}

func (s *Server) refreshBankStats() {
	entries := 0
	for _, name := range s.bank.Names() {
		if t, ok := s.bank.Table(name); ok {
			entries += t.Len()
		}
	}
	s.metrics.UpdateBankStats(s.bank.Len(), entries)
}
