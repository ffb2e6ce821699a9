package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dealcraft/dealcraft/internal/config"
	"github.com/dealcraft/dealcraft/internal/service"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the matching API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		provider, closeProvider, err := initProvider(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeProvider()

		svc := service.New(provider, cfg.Match.TopN)
		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", resolvePort(servePort, cfg.Server.Port)),
			Handler:           buildRouter(svc, cfg.Server),
			ReadHeaderTimeout: 10 * time.Second,
		}
		return startServer(ctx, srv)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// resolvePort prefers the flag value over the configured port.
func resolvePort(flagPort, cfgPort int) int {
	if flagPort != 0 {
		return flagPort
	}
	return cfgPort
}

// startServer runs srv until ctx is cancelled, then shuts it down.
func startServer(ctx context.Context, srv *http.Server) error {
	go func() {
		<-ctx.Done()
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zap.L().Warn("server shutdown", zap.Error(err))
		}
	}()

	zap.L().Info("starting server", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "server listen")
	}
	return nil
}

// buildRouter wires the API routes onto a chi router.
func buildRouter(svc *service.Service, sc config.ServerConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: sc.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))
	if sc.RateLimit > 0 {
		r.Use(rateLimit(sc.RateLimit, sc.RateBurst))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/partners", func(w http.ResponseWriter, r *http.Request) {
			partners, err := svc.Partners(r.Context())
			respond(w, r, partners, err)
		})

		r.Get("/companies", func(w http.ResponseWriter, r *http.Request) {
			companies, err := svc.Companies(r.Context())
			respond(w, r, companies, err)
		})

		r.Get("/matches/{company}", func(w http.ResponseWriter, r *http.Request) {
			result, err := svc.MatchCompany(r.Context(), pathParam(r, "company"))
			respond(w, r, result, err)
		})

		r.Get("/partners/{id}/matches", func(w http.ResponseWriter, r *http.Request) {
			limit := 0
			if raw := r.URL.Query().Get("limit"); raw != "" {
				n, err := strconv.Atoi(raw)
				if err != nil || n < 0 {
					writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
					return
				}
				limit = n
			}
			matches, err := svc.MatchPartner(r.Context(), pathParam(r, "id"), limit)
			respond(w, r, matches, err)
		})

		r.Get("/matrix", func(w http.ResponseWriter, r *http.Request) {
			overview, err := svc.Overview(r.Context())
			respond(w, r, overview, err)
		})
	})

	return r
}

// pathParam returns the decoded URL parameter. chi matches against
// r.URL.RawPath when Go kept one, and only then is the value still escaped.
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return raw
	}
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// respond writes v as JSON, or maps err to a status code.
func respond(w http.ResponseWriter, r *http.Request, v any, err error) {
	if err == nil {
		writeJSON(w, http.StatusOK, v)
		return
	}
	if service.IsNotFound(err) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	zap.L().Error("request failed",
		zap.String("path", r.URL.Path),
		zap.String("request_id", requestID(r.Context())),
		zap.Error(err),
	)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
