package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-ticket-validation/internal/config"
	"github.com/iliyamo/train-ticket-validation/internal/database"
	"github.com/iliyamo/train-ticket-validation/internal/fraud"
	"github.com/iliyamo/train-ticket-validation/internal/graph"
	"github.com/iliyamo/train-ticket-validation/internal/handler"
	"github.com/iliyamo/train-ticket-validation/internal/queue"
	"github.com/iliyamo/train-ticket-validation/internal/repository"
	"github.com/iliyamo/train-ticket-validation/internal/router"
	"github.com/iliyamo/train-ticket-validation/internal/service"
	"github.com/iliyamo/train-ticket-validation/internal/ticket"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("migrate: %v", err)
	}
	cancel()

	keys, err := ticket.LoadKeyPair(cfg.PrivateKeyPath, cfg.PublicKeyPath)
	if err != nil {
		log.Fatalf("key material: %v", err)
	}

	// Read-only after this point; shared across all requests.
	network := graph.DefaultNetwork()

	ticketRepo := repository.NewTicketRepo(db, cfg.BcryptCost)
	deviceRepo := repository.NewDeviceRepo(db)

	registrar := service.NewScanRegistrar(ticketRepo, fraud.NewDetector(network))
	issuer := ticket.NewIssuer(network, keys)

	scanHandler := handler.NewScanHandler(registrar, ticketRepo, network)
	ticketHandler := handler.NewTicketHandler(issuer, network, keys)
	authHandler := handler.NewDeviceAuthHandler(cfg, deviceRepo)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; caching and rate limiting disabled")
	}

	// Consume suspicious-scan alerts in the background; the consumer keeps
	// reconnecting on its own and never takes the server down.
	go func() {
		if err := queue.StartFraudConsumer(); err != nil {
			log.Printf("fraud consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAPI(e, cfg, rdb, scanHandler, ticketHandler, authHandler)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
