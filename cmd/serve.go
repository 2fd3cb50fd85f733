package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/groundwork-civic/civicfeed/internal/feed"
	"github.com/groundwork-civic/civicfeed/internal/model"
)

var servePort int

type feedRequest struct {
	Profile *model.UserProfile `json:"profile"`
	Filters feed.Filters       `json:"filters"`
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the feed HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initPipeline("serve")
		if err != nil {
			return err
		}
		defer env.Close()

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
		}))

		r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Post("/v1/feed", func(w http.ResponseWriter, req *http.Request) {
			var body feedRequest
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
				return
			}

			res, err := env.Feed.GetPersonalizedFeed(req.Context(), body.Profile, body.Filters)
			if err != nil {
				zap.L().Error("feed request failed", zap.Error(err))
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "feed unavailable"})
				return
			}
			writeJSON(w, http.StatusOK, res)
		})

		r.Post("/v1/refresh", func(w http.ResponseWriter, req *http.Request) {
			env.Feed.Refresh()
			writeJSON(w, http.StatusOK, map[string]string{"status": "refresh scheduled"})
		})

		r.Get("/v1/representatives", func(w http.ResponseWriter, req *http.Request) {
			address := req.URL.Query().Get("address")
			if address == "" {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "address is required"})
				return
			}
			reps, err := env.Civic.Representatives(req.Context(), address)
			if err != nil {
				zap.L().Warn("representative lookup failed", zap.Error(err))
				writeJSON(w, http.StatusBadGateway, map[string]string{"error": "lookup unavailable"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"officials": reps})
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		go shutdownOnSignal(ctx, srv, 10*time.Second)

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// shutdownOnSignal waits for ctx to be canceled, then drains in-flight
// requests with a fresh timeout instead of the already-canceled ctx.
func shutdownOnSignal(ctx context.Context, srv *http.Server, drainTimeout time.Duration) {
	<-ctx.Done()
	zap.L().Info("shutting down server")
	drain, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	if err := srv.Shutdown(drain); err != nil {
		zap.L().Warn("server shutdown", zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
