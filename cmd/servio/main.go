package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alexanderramin/servio/internal/cli"
	"github.com/alexanderramin/servio/internal/config"
	"github.com/alexanderramin/servio/internal/db"
	"github.com/alexanderramin/servio/internal/repository"
	"github.com/alexanderramin/servio/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.App{OpenStore: openStore}

	// Prompts and spinners only when a person is at the keyboard.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}

// openStore opens the draft database named by cfg and wires the draft service.
func openStore(cfg config.Config) (service.DraftService, io.Closer, error) {
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}

	drafts := repository.NewSQLiteDraftRepo(database)
	submissions := repository.NewSQLiteSubmissionRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	svc := service.NewDraftService(drafts, submissions, uow,
		service.NewLogUseCaseObserver(slog.Default().With("component", "service")))
	return svc, database, nil
}
