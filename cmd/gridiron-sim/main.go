package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/XavierBriggs/gridiron/internal/cache"
	"github.com/XavierBriggs/gridiron/internal/config"
	"github.com/XavierBriggs/gridiron/internal/handlers"
	"github.com/XavierBriggs/gridiron/internal/history"
	"github.com/XavierBriggs/gridiron/internal/hub"
	"github.com/XavierBriggs/gridiron/internal/league"
	"github.com/XavierBriggs/gridiron/internal/publisher"
	"github.com/XavierBriggs/gridiron/internal/scheduler"
	"github.com/XavierBriggs/gridiron/internal/season"
	"github.com/XavierBriggs/gridiron/internal/sim"
	"github.com/XavierBriggs/gridiron/pkg/contracts"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
)

func main() {
	log.Println("Starting Gridiron Simulation Service...")

	cfg := config.LoadConfig()

	// Initialize Redis client
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opts)
	defer redisClient.Close()

	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Connected to Redis")

	// Optional postgres history store
	var historyStore *history.Store
	if cfg.History.DSN != "" {
		historyStore, err = history.NewStore(cfg.History.DSN)
		if err != nil {
			log.Fatalf("Failed to connect to history store: %v", err)
		}
		defer historyStore.Close()
		if err := historyStore.EnsureSchema(ctx); err != nil {
			log.Fatalf("Failed to ensure history schema: %v", err)
		}
		log.Println("Connected to history store")
	} else {
		log.Println("HISTORY_DSN not set, season history persistence disabled")
	}

	// Initialize components
	cacheWriter := cache.NewRedisWriter(redisClient)
	streamPublisher := publisher.NewStreamPublisher(redisClient)

	collab := contracts.Collaborators{
		Scheduler:  scheduler.RoundRobin{},
		Retirement: season.Retirements{},
		News:       publisher.NewNewsSink(streamPublisher),
	}.WithDefaults()

	engine := sim.NewEngine(collab)
	controller := season.NewController(collab, engine)
	registry := league.NewRegistry()
	broadcastHub := hub.NewHub()

	handler := handlers.NewHandler(registry, engine, controller, collab,
		cacheWriter, streamPublisher, historyStore, broadcastHub)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(120 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", handler.HealthCheck)
	r.Get("/ws", handler.ServeWS)

	r.Route("/api/v1/leagues", func(r chi.Router) {
		r.Post("/", handler.CreateLeague)
		r.Route("/{league_id}", func(r chi.Router) {
			r.Get("/", handler.GetLeague)
			r.Get("/standings", handler.GetStandings)
			r.Get("/news", handler.GetNews)
			r.Get("/results/{week}", handler.GetWeekResults)
			r.Post("/weeks/simulate", handler.SimulateWeek)
			r.Post("/seasons/simulate", handler.SimulateSeason)
			r.Post("/seasons/next", handler.StartNewSeason)
			r.Post("/playoffs/winner", handler.RecordPlayoffWinner)
			r.Post("/offseason", handler.StartOffseason)
		})
	})

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go broadcastHub.Run(ctx)

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: r,
	}

	go func() {
		<-sigChan
		log.Println("Received shutdown signal")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		server.Shutdown(shutdownCtx)
	}()

	log.Printf("Listening on %s", cfg.Server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server failed: %v", err)
	}

	log.Println("Gridiron Simulation Service stopped")
}
