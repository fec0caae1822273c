// Command regdesk-archiver moves converted teams out of the journal into an
// archive file. It runs offline, against the journal only, never against a
// live server.
package main

import (
	"flag"
	"os"

	log "github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"

	"github.com/regdesk/regdesk/config"
	"github.com/regdesk/regdesk/io"
	"github.com/regdesk/regdesk/model"
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

	journalPath := flag.String("journal", cfg.JournalPath, "path of the journal to compact")
	archivePath := flag.String("out", "", "archive destination (default <journal>.archived)")
	dryRun := flag.Bool("dry-run", false, "report what would be archived without writing")
	flag.Parse()

	logger := log.New(&log.LoggerOptions{
		Name:  "regdesk-archiver",
		Level: log.LevelFromString(cfg.LogLevel),
	})

	if *journalPath == "" {
		logger.Error("no journal configured, pass --journal or set JOURNAL_PATH")
		os.Exit(1)
	}
	if *archivePath == "" {
		*archivePath = *journalPath + ".archived"
	}

	if err := run(logger, *journalPath, *archivePath, *dryRun); err != nil {
		logger.Error("archiving failed", "err", err)
		os.Exit(1)
	}
}

func run(logger log.Logger, journalPath, archivePath string, dryRun bool) error {
	journal, err := io.OpenFileJournal(journalPath)
	if err != nil {
		return err
	}

	schema, err := repo.GetSchema()
	if err != nil {
		return err
	}
	store, err := io.NewMemoryStore(schema, journal, logger)
	if err != nil {
		journal.Close()
		return err
	}
	if err := store.Restore(repo.RestoreHandlers()); err != nil {
		journal.Close()
		return err
	}
	if err := journal.Close(); err != nil {
		return err
	}

	service := usecase.NewService(store, io.NewClock(), logger)
	extract, err := service.ExtractConverted()
	if err != nil {
		return err
	}

	teams, participants := 0, 0
	for _, record := range extract.Archived {
		switch record.Table {
		case model.TeamType:
			teams++
		case model.ParticipantType:
			participants++
		}
	}
	logger.Info("converted records found", "teams", teams, "participants", participants)
	if dryRun {
		logger.Info("dry run, nothing written")
		return nil
	}
	if teams == 0 {
		logger.Info("nothing to archive")
		return nil
	}

	archive, err := io.OpenFileJournal(archivePath)
	if err != nil {
		return err
	}
	if err := archive.Append(extract.Archived...); err != nil {
		archive.Close()
		return err
	}
	if err := archive.Close(); err != nil {
		return err
	}

	compactedPath := journalPath + ".compacting"
	compacted, err := io.OpenFileJournal(compactedPath)
	if err != nil {
		return err
	}
	if err := compacted.Append(extract.Kept...); err != nil {
		compacted.Close()
		return err
	}
	if err := compacted.Close(); err != nil {
		return err
	}
	if err := os.Rename(compactedPath, journalPath); err != nil {
		return err
	}

	logger.Info("journal compacted",
		"archived_to", archivePath,
		"teams", teams,
		"participants", participants,
		"kept_records", len(extract.Kept))
	return nil
}
