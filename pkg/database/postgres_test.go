package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/ingenio-api/pkg/config"
)

func TestDSNIncludesConnectTimeout(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{
		Host:           "db",
		Port:           5433,
		User:           "app",
		Password:       "secret",
		Name:           "ingenio",
		SSLMode:        "require",
		ConnectTimeout: 5 * time.Second,
	})
	assert.Equal(t, "host=db port=5433 user=app password=secret dbname=ingenio sslmode=require connect_timeout=5", dsn)
}

func TestDSNDefaultsConnectTimeout(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{Host: "localhost", Port: 5432, SSLMode: "disable"})
	assert.Contains(t, dsn, "connect_timeout=2")
}
