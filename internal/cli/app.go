// Package cli implements the interactive Studyos shell: a REPL over the
// file, study and backup services.
package cli

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/studyos/internal/config"
	"github.com/dmitrijs2005/studyos/internal/imaging"
	"github.com/dmitrijs2005/studyos/internal/logging"
	"github.com/dmitrijs2005/studyos/internal/repositories"
	"github.com/dmitrijs2005/studyos/internal/services"

	_ "modernc.org/sqlite"
)

type App struct {
	config *config.Config
	repos  *repositories.Repositories

	fileService   services.FileService
	studyService  services.StudyService
	backupService services.BackupService

	log    logging.Logger
	reader *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	repos, err := repositories.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err.Error())
		return nil, err
	}

	comp := imaging.NewCompressor(log)

	return &App{
		config:        c,
		repos:         repos,
		fileService:   services.NewFileService(repos.Files, comp, log),
		studyService:  services.NewStudyService(repos.Decks, log, c.NewCardsPerSession),
		backupService: services.NewBackupService(repos.Files, repos.Decks, repos.Snapshots, log),
		log:           log,
		reader:        bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer func() { _ = a.repos.DB.Close() }()

	printlnFn("Studyos (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, scanner)
}
