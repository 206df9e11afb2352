package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/example/storefront/internal/api"
	"github.com/example/storefront/internal/app"
	"github.com/example/storefront/internal/audit"
	"github.com/example/storefront/internal/events"
	"github.com/example/storefront/internal/remote"
	"github.com/example/storefront/internal/session"
)

type config struct {
	Addr          string        `envconfig:"ADDR" default:":8080"`
	APIURL        string        `envconfig:"API_URL"`
	CDNURL        string        `envconfig:"CDN_URL"`
	DatabaseURL   string        `envconfig:"DATABASE_URL"`
	KafkaBrokers  string        `envconfig:"KAFKA_BROKERS"`
	KafkaTopic    string        `envconfig:"KAFKA_TOPIC" default:"storefront-events"`
	SessionSecret string        `envconfig:"SESSION_SECRET" required:"true"`
	SessionExpiry time.Duration `envconfig:"SESSION_EXPIRY" default:"24h"`
}

const catalogTimeout = 15 * time.Second

func main() {
	var cfg config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("[Storefront] Config error: %v", err)
	}
	if len(cfg.SessionSecret) < 32 {
		log.Fatal("[Storefront] SESSION_SECRET must be at least 32 characters long")
	}

	log.Println("[Storefront] ========================================")
	log.Println("[Storefront] Storefront session engine")
	log.Println("[Storefront] ========================================")

	store, cleanup, err := buildStore(cfg)
	if err != nil {
		log.Fatalf("[Storefront] Remote store error: %v", err)
	}
	defer cleanup()

	var publisher *audit.Publisher
	if cfg.KafkaBrokers != "" {
		brokers := strings.Split(cfg.KafkaBrokers, ",")
		publisher = audit.NewPublisher(brokers, cfg.KafkaTopic)
		defer publisher.Close()
		log.Printf("[Storefront] Audit stream: %v topic %s", brokers, cfg.KafkaTopic)
	}

	tokens := session.NewTokenService(cfg.SessionSecret, cfg.SessionExpiry)
	sessions := session.NewManager(func(sessionID string) (*app.App, error) {
		bus := events.NewBus()
		a := app.New(bus, store)
		if publisher != nil {
			publisher.Attach(bus, sessionID)
		}
		ctx, cancel := context.WithTimeout(context.Background(), catalogTimeout)
		defer cancel()
		if err := a.LoadCatalog(ctx); err != nil {
			return nil, err
		}
		return a, nil
	})

	handlers := api.NewHandlers(sessions)
	router := api.NewRouter(handlers, tokens)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	go func() {
		log.Printf("[Storefront] Server started on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("[Storefront] Server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[Storefront] Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	server.Shutdown(shutdownCtx)
}

// buildStore picks the remote store backend: a local Postgres catalog when
// DATABASE_URL is set, otherwise the upstream HTTP API.
func buildStore(cfg config) (remote.Store, func(), error) {
	if cfg.DatabaseURL != "" {
		db, err := remote.ConnectPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		store, err := remote.NewPostgresStore(db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		log.Println("[Storefront] Remote store: PostgreSQL")
		return store, func() { db.Close() }, nil
	}

	if cfg.APIURL == "" {
		log.Fatal("[Storefront] Either API_URL or DATABASE_URL is required")
	}
	log.Printf("[Storefront] Remote store: %s (CDN %s)", cfg.APIURL, cfg.CDNURL)
	return remote.NewClient(cfg.APIURL, cfg.CDNURL), func() {}, nil
}
