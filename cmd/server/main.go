package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/concrem/helpdesk/internal/config"
	"github.com/concrem/helpdesk/internal/database"
	"github.com/concrem/helpdesk/internal/handler"
	"github.com/concrem/helpdesk/internal/middleware"
	"github.com/concrem/helpdesk/internal/queue"
	"github.com/concrem/helpdesk/internal/repository"
	"github.com/concrem/helpdesk/internal/restapi"
	"github.com/concrem/helpdesk/internal/router"
	queue_publisher "github.com/concrem/helpdesk/internal/service"
	"github.com/concrem/helpdesk/internal/store"
)

func main() {
	_ = godotenv.Load() // optional .env for local runs
	cfg := config.Load()

	h := &handler.Handler{BcryptCost: cfg.BcryptCost}
	var tokens store.TokenStore

	// Backend selection happens once, here. MySQL is the primary when
	// configured; otherwise everything runs over the legacy REST API.
	// With both present, issuances and sectors keep a per-call REST
	// fallback for resilience.
	var rest *restapi.Client
	if cfg.APIURL != "" {
		rest = restapi.New(cfg.APIURL, cfg.APIKey)
	}
	if cfg.HasDB() {
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			log.Fatalf("mysql: %v", err)
		}
		h.Tickets = repository.NewTicketRepo(db)
		h.Equipment = repository.NewEquipmentRepo(db)
		h.Products = repository.NewProductRepo(db)
		h.Issuances = repository.NewIssuanceRepo(db)
		h.Sectors = repository.NewSectorRepo(db)
		h.Users = repository.NewUserRepo(db)
		tokens = repository.NewTokenRepo(db)
		if rest != nil {
			h.Issuances = &store.FailoverIssuances{Primary: h.Issuances, Fallback: restapi.Issuances{C: rest}}
			h.Sectors = &store.FailoverSectors{Primary: h.Sectors, Fallback: restapi.Sectors{C: rest}}
		}
	} else {
		h.Tickets = restapi.Tickets{C: rest}
		h.Equipment = restapi.Equipment{C: rest}
		h.Products = restapi.Products{C: rest}
		h.Issuances = restapi.Issuances{C: rest}
		h.Sectors = restapi.Sectors{C: rest}
		h.Users = restapi.Users{C: rest}
		tokens = store.NewMemoryTokens()
		log.Printf("running on REST fallback backend at %s", cfg.APIURL)
	}

	h.PublishCompleted = queue_publisher.PublishTicketCompleted

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache and rate limiting disabled")
	}
	cacheCfg := config.LoadCacheConfig()
	h.Invalidate = middleware.CacheInvalidator(cacheCfg, rdb)

	e := echo.New()

	// The limiter runs after JWTAuth inside the route groups so each
	// bucket is keyed and sized by the session's tier.
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, h.Users, tokens), cfg.JWTSecret, limiter)
	router.RegisterResources(e, h, cfg.JWTSecret, limiter, middleware.NewRedisCache(cacheCfg, rdb))

	// Background consumer that turns completion events into the audit
	// log file. Runs its own reconnect loop.
	go func() {
		if err := queue.StartTicketConsumer(); err != nil {
			log.Printf("ticket consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
