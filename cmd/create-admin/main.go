package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/ingenio-api/internal/repository"
	"github.com/noah-isme/ingenio-api/internal/service"
	"github.com/noah-isme/ingenio-api/pkg/config"
	"github.com/noah-isme/ingenio-api/pkg/database"
	"github.com/noah-isme/ingenio-api/pkg/logger"
)

// create-admin creates the admin credential, or resets its password and
// reactivates it when the username already exists.
func main() {
	username := flag.String("username", envOr("ADMIN_USERNAME", "admin"), "admin username")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "admin password (min 8 characters)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	auth := service.NewAuthService(repository.NewUserRepository(db), nil, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	info, err := auth.BootstrapAdmin(ctx, *username, *password)
	if err != nil {
		logr.Fatal("failed to create admin", zap.Error(err))
	}
	logr.Info("admin ready", zap.Int64("user_id", info.ID), zap.String("username", info.Username))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
