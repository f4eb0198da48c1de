package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"

	httpadapter "resume-builder/internal/adapter/http"
	"resume-builder/internal/adapter/repository"
	"resume-builder/internal/usecase"
	infra "resume-builder/pkg/infrastructure"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	dbPath := os.Getenv("RESUME_DB")
	if dbPath == "" {
		dbPath = "resume.db"
	}
	kv, err := repository.OpenSQLiteKV(dbPath)
	if err != nil {
		logger.Error("open store failed", "path", dbPath, "error", err)
		os.Exit(1)
	}
	defer kv.Close()

	bridge := usecase.NewBridge(kv, usecase.BridgeConfig{Logger: logger})
	doc := bridge.Load(context.Background())
	session := usecase.NewSession(doc)

	renderer := infra.NewChromedpRenderer()
	preview := usecase.NewPreview(renderer, usecase.PreviewConfig{Logger: logger})
	preview.Observe(session)
	session.Subscribe(func() {
		bridge.Autosave(session.Document())
	})

	app := fiber.New()
	h := httpadapter.NewHandler(session, bridge, preview, renderer, logger)
	h.Register(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	preview.Close()
	bridge.Flush()
	if err := app.Shutdown(); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
