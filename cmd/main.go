package main

import (
	"context"
	"fmt"
	"os"

	authservice "github.com/parsgolf/server/auth/service"
	authsqlite "github.com/parsgolf/server/auth/storage/sqlite"
	"github.com/parsgolf/server/internal/config"
	"github.com/parsgolf/server/internal/logger"
	"github.com/parsgolf/server/internal/mail"
	"github.com/parsgolf/server/internal/oauth"
	"github.com/parsgolf/server/internal/service"
	"github.com/parsgolf/server/internal/storage/sqlite"
	"github.com/parsgolf/server/internal/web"

	_ "github.com/mattn/go-sqlite3"
)

func main() {
	if err := run(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.New()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Server.Debug)

	if err := os.MkdirAll(cfg.Server.UploadDir, 0o755); err != nil {
		return err
	}

	contentStorage, err := sqlite.New(log, cfg.Content)
	if err != nil {
		return err
	}
	defer contentStorage.Close()

	authStorage, err := authsqlite.New(log, cfg.Auth)
	if err != nil {
		return err
	}
	defer authStorage.Close()

	authService, err := authservice.New(ctx, log, cfg.Auth, authStorage)
	if err != nil {
		return err
	}

	contentService := service.New(log, contentStorage, contentStorage, authService)

	providers, err := oauth.New(cfg.OAuth, cfg.Server.ExternalURL)
	if err != nil {
		return err
	}
	mailer := mail.New(log, cfg.Mail)

	server, err := web.New(contentService, cfg.Server, authService, mailer, providers)
	if err != nil {
		return err
	}
	log.WithField("from", "main").Info("starting server")
	return server.Serve()
}
