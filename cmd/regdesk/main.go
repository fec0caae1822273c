package main

import (
	"os"
	"os/signal"
	"syscall"

	log "github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"

	"github.com/regdesk/regdesk/backend"
	"github.com/regdesk/regdesk/config"
	"github.com/regdesk/regdesk/io"
	"github.com/regdesk/regdesk/repo"
	"github.com/regdesk/regdesk/usecase"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Default().Error("config", "err", err)
		os.Exit(1)
	}

	logger := log.New(&log.LoggerOptions{
		Name:  "regdesk",
		Level: log.LevelFromString(cfg.LogLevel),
	})

	var journal io.Journal
	if cfg.JournalPath != "" {
		fileJournal, err := io.OpenFileJournal(cfg.JournalPath)
		if err != nil {
			logger.Error("opening journal", "path", cfg.JournalPath, "err", err)
			os.Exit(1)
		}
		defer fileJournal.Close()
		journal = fileJournal
	} else {
		logger.Warn("JOURNAL_PATH is not set, registrations will not survive a restart")
	}

	schema, err := repo.GetSchema()
	if err != nil {
		logger.Error("building db schema", "err", err)
		os.Exit(1)
	}
	store, err := io.NewMemoryStore(schema, journal, logger)
	if err != nil {
		logger.Error("creating store", "err", err)
		os.Exit(1)
	}
	if err := store.Restore(repo.RestoreHandlers()); err != nil {
		logger.Error("replaying journal", "err", err)
		os.Exit(1)
	}

	service := usecase.NewService(store, io.NewClock(), logger)
	app := backend.NewApp(cfg, service, logger)

	go func() {
		logger.Info("http listening", "addr", cfg.HTTPAddr)
		if err := app.Listen(cfg.HTTPAddr); err != nil {
			logger.Error("http server stopped", "err", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("shutting down")
	_ = app.Shutdown()
}
