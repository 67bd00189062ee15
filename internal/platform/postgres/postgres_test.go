package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPoolFromEnv(t *testing.T) {
	t.Setenv("POSTGRES_MAX_OPEN_CONNS", "20")
	t.Setenv("POSTGRES_MAX_IDLE_CONNS", "bogus")
	t.Setenv("POSTGRES_CONN_MAX_LIFETIME", "30m")
	assert.Equal(t, Pool{MaxOpenConns: 20, ConnMaxLifetime: 30 * time.Minute}, PoolFromEnv())
}

func TestConnectRejectsEmptyDSN(t *testing.T) {
	_, err := Connect(context.Background(), "  ")
	assert.ErrorContains(t, err, "DSN is empty")
}

func TestConnectFromEnvWithoutDSN(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "")
	db, cleanup := ConnectFromEnv(context.Background(), nil)
	assert.Nil(t, db)
	cleanup()
}
