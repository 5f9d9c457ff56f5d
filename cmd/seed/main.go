// seed inserts a development sample license for local testing.
// Idempotent: skips the insert if the demo license already exists.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"license-control-plane/internal/config"
	"license-control-plane/internal/db"
	"license-control-plane/internal/db/sqlc/gen"
)

const demoLicenseID = "ABC-123-XYZ"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	queries := gen.New(conn)

	if _, err := queries.GetLicense(ctx, demoLicenseID); err == nil {
		log.Printf("seed: license %s already exists, skipping", demoLicenseID)
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		log.Fatalf("seed: get license: %v", err)
	}

	expires := time.Now().AddDate(1, 0, 0).Unix()
	lic, err := queries.UpsertLicense(ctx, gen.UpsertLicenseParams{
		ID:        demoLicenseID,
		ExpiresAt: expires,
	})
	if err != nil {
		log.Fatalf("seed: upsert license: %v", err)
	}
	log.Printf("seed: created license %s expiring %s", lic.ID, time.Unix(lic.ExpiresAt, 0).UTC().Format(time.RFC3339))
}
