package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	meetingspostgres "github.com/Apurer/go-gin-design-library/internal/domains/meetings/adapters/persistence/postgres"
	platformpostgres "github.com/Apurer/go-gin-design-library/internal/platform/postgres"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot purge idempotency keys")
	}

	cutoff := time.Now().Add(-keyTTLFromEnv())
	purged, err := meetingspostgres.NewIdempotencyStore(db).PurgeOlderThan(ctx, cutoff)
	if err != nil {
		log.Fatalf("failed to purge idempotency keys: %v", err)
	}
	logger.Info("idempotency key purge completed", slog.Int64("purged", purged), slog.Time("cutoff", cutoff))
}

func keyTTLFromEnv() time.Duration {
	raw := strings.TrimSpace(os.Getenv("IDEMPOTENCY_KEY_TTL_HOURS"))
	if raw == "" {
		return meetingspostgres.DefaultKeyTTL
	}
	hours, err := strconv.Atoi(raw)
	if err != nil || hours <= 0 {
		return meetingspostgres.DefaultKeyTTL
	}
	return time.Duration(hours) * time.Hour
}
