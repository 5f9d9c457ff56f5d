// server runs the license HTTP API: client verification plus admin provisioning.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"license-control-plane/internal/audit"
	auditrepo "license-control-plane/internal/audit/repository"
	"license-control-plane/internal/config"
	"license-control-plane/internal/db"
	licensehandler "license-control-plane/internal/license/handler"
	licenserepo "license-control-plane/internal/license/repository"
	"license-control-plane/internal/license/service"
	"license-control-plane/internal/ratelimit"
	"license-control-plane/internal/security"
	"license-control-plane/internal/server"
	"license-control-plane/internal/server/middleware"
	"license-control-plane/internal/telemetry"
	"license-control-plane/internal/telemetry/otel"
	"license-control-plane/internal/telemetry/producer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	providers, err := otel.NewProviders(ctx, cfg.OTelEndpoint, "license-control-plane", cfg.OTelInsecure)
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}
	providers.SetGlobal()

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	licenseRepo := licenserepo.NewPostgresRepository(conn)
	auditLogger := audit.NewLogger(auditrepo.NewPostgresRepository(conn), middleware.GetClientIP)

	governor := ratelimit.NewGovernor(cfg.RateLimitMax, cfg.RateLimitWindow())
	go pruneLoop(ctx, governor)

	signer := security.NewSigner(cfg.LicenseSecret)
	verifier := security.NewAdminVerifier(cfg.AdminKeyHash, cfg.AdminKey, security.NewHasher(cfg.BcryptCost))
	if !verifier.Enabled() {
		log.Println("admin credential not configured; admin routes disabled")
	}

	emitters := telemetry.Fanout{otel.NewEventEmitter(providers.LoggerProvider)}
	var kafkaProducer *producer.KafkaProducer
	if brokers := cfg.EventsKafkaBrokersList(); len(brokers) > 0 {
		kafkaProducer, err = producer.NewKafkaProducer(brokers, cfg.EventsKafkaTopic)
		if err != nil {
			log.Fatalf("kafka: %v", err)
		}
		if kafkaProducer != nil {
			emitters = append(emitters, kafkaProducer)
		}
	}

	handler := licensehandler.NewHandler(
		service.NewVerifyService(licenseRepo, governor, signer),
		service.NewAdminService(licenseRepo),
		auditLogger,
		emitters,
	)

	router := server.NewRouter(server.Deps{
		License:       handler,
		AdminVerifier: verifier,
		HealthPinger:  conn,
	})
	srv := server.NewHTTPServer(cfg.HTTPAddr, router)

	go func() {
		log.Printf("http server listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down http server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}

	// Let in-flight async emits drain before tearing down the sinks.
	time.Sleep(telemetry.ShutdownDrainDuration)
	if kafkaProducer != nil {
		if err := kafkaProducer.Close(); err != nil {
			log.Printf("kafka close: %v", err)
		}
	}
	if err := providers.Shutdown(shutdownCtx); err != nil {
		log.Printf("telemetry shutdown: %v", err)
	}
	log.Println("http server stopped")
}

// pruneLoop drops expired rate-limit windows so the governor's memory stays
// bounded by active callers.
func pruneLoop(ctx context.Context, g *ratelimit.Governor) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.Prune()
		}
	}
}
