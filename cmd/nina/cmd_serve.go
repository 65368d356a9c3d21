package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Mammutor/NINA/addressbook"
	"github.com/Mammutor/NINA/config"
	"github.com/Mammutor/NINA/graphs_go"
	"github.com/Mammutor/NINA/handlers"
	"github.com/Mammutor/NINA/logging"
	"github.com/Mammutor/NINA/metrics"
	"github.com/Mammutor/NINA/routing"
	"github.com/Mammutor/NINA/services"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the routing API and the admin listener",
		Long:  "Run the routing API and the admin listener. Settings come from the environment and an optional .env file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logging.New(logging.Options{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cache := graphs_go.NewCache(graphs_go.Options{Bidirectional: cfg.BidirectionalGraph}, log)
	graph, err := cache.Get(ctx, cfg.GraphPath)
	if err != nil {
		return err
	}
	stats := graph.Stats()
	metrics.GraphNodes.Set(float64(stats.Nodes))
	metrics.GraphEdges.Set(float64(stats.Edges))

	var book *addressbook.Book
	if cfg.AddressesPath != "" {
		if book, err = addressbook.LoadFile(cfg.AddressesPath); err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"path":      cfg.AddressesPath,
			"addresses": book.Len(),
		}).Info("address book loaded")
	}

	svc := services.NewRoutingService(graph, routing.NewPlanner(cfg.Weights), book, services.Settings{
		AbortFactor:           cfg.AbortFactor,
		FallbackAbortDistance: cfg.FallbackAbortDistanceM,
		SearchTimeout:         cfg.SearchTimeout,
	}, log)

	gin.SetMode(gin.ReleaseMode)
	public := &http.Server{
		Addr: cfg.Addr(),
		Handler: handlers.NewRouter(ctx, handlers.RouterDeps{
			Log:         log,
			Service:     svc,
			CORSOrigins: cfg.CORSOrigins,
			RateLimit:   cfg.RateLimit,
			RateBurst:   cfg.RateBurst,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	adminRouter := mux.NewRouter()
	handlers.NewAdminHandler(graph).RegisterRoutes(adminRouter)
	admin := &http.Server{
		Addr:              cfg.AdminAddr(),
		Handler:           adminRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range []*http.Server{public, admin} {
		g.Go(func() error {
			log.WithField("addr", srv.Addr).Info("listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return errors.Join(public.Shutdown(shutdownCtx), admin.Shutdown(shutdownCtx))
	})

	return g.Wait()
}
