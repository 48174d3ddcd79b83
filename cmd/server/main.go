package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"foxform/internal/config"
	"foxform/internal/player"
	"foxform/internal/scheduler"
	"foxform/internal/server"
	"foxform/internal/service"
	"foxform/internal/storage"
	"foxform/internal/storage/memory"
	"foxform/internal/storage/providers"
	httptransport "foxform/internal/transport/http"
	"foxform/internal/upload"
)

func main() {
	cfg := config.MustLoad()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var (
		formProvider     service.FormProvider
		responseProvider service.ResponseProvider
	)
	if cfg.DatabaseUrl != "" {
		db, err := storage.InitDB(cfg.DatabaseUrl)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer db.Close()

		allProviders := providers.New(db)
		formProvider = allProviders.FormProvider
		responseProvider = allProviders.ResponseProvider
	} else {
		slog.Warn("no database_url configured, using the in-memory store")
		store := memory.NewStore()
		formProvider = store
		responseProvider = store
	}

	formService := service.NewFormService(formProvider, cfg.Share.BaseURL)
	responseService := service.NewResponseService(formProvider, responseProvider)

	sessions := player.NewManager(responseService, cfg.Player.SessionTTL)
	scheduler.NewSessionSweeper(sessions, cfg.Player.SweepInterval).Start(ctx)

	uploads := upload.NewStore(cfg.Upload.Dir, cfg.Upload.BaseURL, cfg.Upload.MaxSizeMB)

	router := httptransport.Router(httptransport.Deps{
		Forms:     formService,
		Responses: responseService,
		Sessions:  sessions,
		Uploads:   uploads,
		JWTSecret: cfg.JWT.Secret,
	})

	addr := ":" + cfg.Server.Port
	log.Printf("listening on %s", addr)
	if err := server.Start(ctx, addr, cfg.CORS.AllowedOrigins, router); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
