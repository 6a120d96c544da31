package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/matchday-rundown/internal/config"
	"github.com/iliyamo/matchday-rundown/internal/database"
	"github.com/iliyamo/matchday-rundown/internal/handler"
	"github.com/iliyamo/matchday-rundown/internal/middleware"
	"github.com/iliyamo/matchday-rundown/internal/queue"
	"github.com/iliyamo/matchday-rundown/internal/repository"
	"github.com/iliyamo/matchday-rundown/internal/roster"
	"github.com/iliyamo/matchday-rundown/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database open failed: %v", err)
	}
	defer func() { _ = db.Close() }()

	// Redis backs the response cache and the rate limiter. A nil client
	// disables both; the API itself keeps working.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable: cache and rate limiting disabled")
	}

	// Background consumer appends rundown.changed events to logs/rundown.log.
	go func() {
		if err := queue.StartRundownConsumer(); err != nil {
			log.Printf("rundown consumer stopped: %v", err)
		}
	}()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	productions := repository.NewProductionRepo(db)
	segments := repository.NewSegmentRepo(db)
	assignments := repository.NewAssignmentRepo(db)
	positions := repository.NewPositionRepo(db)
	crew := repository.NewCrewRepo(db)
	templates := repository.NewTemplateRepo(db)

	authHandler := handler.NewAuthHandler(cfg, users, tokens)
	producerHandler := handler.NewProducerHandler(productions, segments)
	rosterHandler := handler.NewRosterHandler(
		productions, segments, assignments, positions, crew,
		roster.NewDefaultResolver(templates))

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPlanner(e, producerHandler, rosterHandler, cfg.JWTSecret,
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
