package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Guilhem-Bonnet/radioteca/internal/adapters/httpapi"
	"github.com/Guilhem-Bonnet/radioteca/internal/adapters/memorybus"
	"github.com/Guilhem-Bonnet/radioteca/internal/adapters/sqlite"
	"github.com/Guilhem-Bonnet/radioteca/internal/app"
	"github.com/Guilhem-Bonnet/radioteca/internal/buildinfo"
	"github.com/Guilhem-Bonnet/radioteca/internal/config"
)

func main() {
	// .env optionnel, pratique en dev.
	_ = godotenv.Load()

	def := config.Default()
	addr := flag.String("addr", def.Addr, "Adresse d'écoute (ex: 127.0.0.1:8080)")
	dbPath := flag.String("db", def.DBPath, "Chemin SQLite (ex: radioteca.db)")
	configURL := flag.String("config-url", def.ConfigURL, "URL du document de config distante")
	flag.Parse()

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("app", "radioteca-server").Logger()
	log.Logger = logger

	logger.Info().Interface("build", buildinfo.Current()).Str("db", *dbPath).Msg("starting")

	ctx := context.Background()
	db, err := sqlite.Open(ctx, *dbPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open db")
	}
	defer func() { _ = db.Close() }()

	bus := memorybus.New()
	defer bus.Close()

	configRepo := sqlite.NewConfigRepository(db.SQL)
	configSvc := app.NewRemoteConfigService(
		logger.With().Str("component", "remote-config").Logger(),
		configRepo, *configURL, def.HTTPTimeout, bus)

	remote := app.NewWordPressCatalog(configSvc.APIBaseURL, app.WordPressOptions{
		Timeout:           def.HTTPTimeout,
		RequestsPerSecond: def.RequestsPerSecond,
	})

	programsRepo := sqlite.NewProgramsRepository(db.SQL)
	episodesRepo := sqlite.NewEpisodesRepository(db.SQL)
	catalogSvc := app.NewCatalogService(
		logger.With().Str("component", "catalog").Logger(),
		remote, programsRepo, episodesRepo, bus)

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Refresh de config best-effort: ne bloque jamais le démarrage,
	// l'échec est loggé et avalé.
	configSvc.RefreshInBackground(shutdownCtx)

	srv := httpapi.NewServer(logger, catalogSvc, configSvc, bus)
	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", *addr).Msg("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server crashed")
			stop()
		}
	}()

	<-shutdownCtx.Done()
	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(ctx)
	logger.Info().Msg("bye")
}
