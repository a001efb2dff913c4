// Package api RiftVault REST API
//
// @title           RiftVault REST API
// @version         1.0.0
// @description     Upload, decode and browse League of Legends replay files.
// @host            localhost:8080
// @BasePath        /api/v1
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/swaggo/swag"
)

const (
	metricsInterval = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

// NewRouter builds the HTTP routes for server
func NewRouter(server *Server, gatherer prometheus.Gatherer) http.Handler {
	metrics := server.metrics
	if metrics == nil {
		metrics = NewMetrics(prometheus.NewRegistry())
		server.metrics = metrics
		server.ingester.Metrics = metrics
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(server.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		// Health check
		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))

		// Replays
		r.Post("/decode", metrics.InstrumentHandler("POST", "/api/v1/decode", server.handleDecode))

		// Matches
		r.Post("/matches", metrics.InstrumentHandler("POST", "/api/v1/matches", server.handleUpload))
		r.Get("/matches", metrics.InstrumentHandler("GET", "/api/v1/matches", server.handleListMatches))
		r.Get("/matches/{hash}", metrics.InstrumentHandler("GET", "/api/v1/matches/{hash}", server.handleGetMatch))
		r.Put("/matches/{hash}", metrics.InstrumentHandler("PUT", "/api/v1/matches/{hash}", server.handleUpdateMatch))
		r.Delete("/matches/{hash}", metrics.InstrumentHandler("DELETE", "/api/v1/matches/{hash}", server.handleDeleteMatch))
		r.Get("/matches/{hash}/download", metrics.InstrumentHandler("GET", "/api/v1/matches/{hash}/download", server.handleDownload))

		// Aggregates
		r.Get("/leaderboard", metrics.InstrumentHandler("GET", "/api/v1/leaderboard", server.handleLeaderboard))
		r.Get("/players/{puuid}", metrics.InstrumentHandler("GET", "/api/v1/players/{puuid}", server.handlePlayer))

		// Diagnostics
		r.Get("/stats", metrics.InstrumentHandler("GET", "/api/v1/stats", server.handleStats))
	})

	// Swagger documentation
	r.Get("/swagger/*", server.handleSwagger)

	return r
}

func (s *Server) handleSwagger(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/swagger/", "/swagger/index.html":
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerUI))
	case "/swagger/swagger.json":
		doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
		if err != nil {
			s.logger.WithError(err).Error("generate swagger doc")
			http.Error(w, "Failed to generate Swagger documentation", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(doc))
	default:
		http.NotFound(w, r)
	}
}

const swaggerUI = `<!DOCTYPE html>
<html>
<head>
	 <title>RiftVault API Documentation</title>
	 <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui.css" />
</head>
<body>
	 <div id="swagger-ui"></div>
	 <script src="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui-bundle.js"></script>
	 <script>
	   window.onload = function() {
	     SwaggerUIBundle({
	       url: '/swagger/swagger.json',
	       dom_id: '#swagger-ui',
	       presets: [
	         SwaggerUIBundle.presets.apis,
	         SwaggerUIBundle.presets.standalone
	       ]
	     });
	   };
	 </script>
</body>
</html>`

// StartServer serves the API until ctx is cancelled, then shuts down gracefully
func StartServer(ctx context.Context, store MatchStore, config ServerConfig, logger logrus.FieldLogger) error {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	// Set Swagger host with port
	SwaggerInfo.Host = fmt.Sprintf("localhost:%d", config.Port)

	metrics := NewMetrics(prometheus.DefaultRegisterer)
	server := NewServer(store, config, metrics, logger)

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(server, prometheus.DefaultGatherer),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Start background metrics updater
	go server.startMetricsUpdater(ctx, metricsInterval)

	errCh := make(chan error, 1)
	go func() {
		logger.WithFields(logrus.Fields{
			"addr":    addr,
			"metrics": fmt.Sprintf("http://%s/metrics", addr),
		}).Info("starting RiftVault REST API server")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down API server")
	shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
	defer done()
	return httpServer.Shutdown(shutdownCtx)
}
