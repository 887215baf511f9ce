package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rpggio/sena/internal/clock"
	"github.com/rpggio/sena/internal/config"
	"github.com/rpggio/sena/internal/domain/comment"
	"github.com/rpggio/sena/internal/domain/document"
	"github.com/rpggio/sena/internal/domain/history"
	"github.com/rpggio/sena/internal/domain/learner"
	"github.com/rpggio/sena/internal/domain/program"
	"github.com/rpggio/sena/internal/domain/project"
	"github.com/rpggio/sena/internal/domain/report"
	"github.com/rpggio/sena/internal/domain/user"
	"github.com/rpggio/sena/internal/logging"
	"github.com/rpggio/sena/internal/sqlite"
	"go.uber.org/zap"
)

// App holds the services a command runs against.
type App struct {
	DB     *sqlite.DB
	DBPath string
	Logger *zap.Logger
	Clock  clock.Clock

	Users     *user.Service
	Projects  *project.Service
	History   *history.Service
	Comments  *comment.Service
	Documents *document.Service
	Learners  *learner.Service
	Programs  *program.Service
	Reports   *report.Service
}

// Open loads configuration, opens and migrates the database and wires the
// services.
func Open(opts *RootOptions) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "load config", err)
	}
	if opts.DBPath != "" {
		cfg.DB.Path = opts.DBPath
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "create logger", err)
	}

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		return nil, WrapExitError(ExitCommandError, "prepare database path", err)
	}
	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "open database", err)
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, WrapExitError(ExitCommandError, "run migrations", err)
	}

	clk := opts.Clock
	if clk == nil {
		clk = clock.System{}
	}
	app := NewApp(db, clk, logger, cfg.Projects.StrictTransitions)
	app.DBPath = cfg.DB.Path
	return app, nil
}

// NewApp wires the services over an open database.
func NewApp(db *sqlite.DB, clk clock.Clock, logger *zap.Logger, strictTransitions bool) *App {
	userRepo := sqlite.NewUserRepository(db)
	projectRepo := sqlite.NewProjectRepository(db)
	historyRepo := sqlite.NewHistoryRepository(db)
	learnerRepo := sqlite.NewLearnerRepository(db)

	return &App{
		DB:     db,
		Logger: logger,
		Clock:  clk,

		Users: user.NewService(userRepo, clk, logger.Named("users")),
		Projects: project.NewService(projectRepo, historyRepo, userRepo, clk, logger.Named("projects"),
			project.WithStrictTransitions(strictTransitions)),
		History:   history.NewService(historyRepo, logger.Named("history")),
		Comments:  comment.NewService(sqlite.NewCommentRepository(db), projectRepo, clk, logger.Named("comments")),
		Documents: document.NewService(sqlite.NewDocumentRepository(db), projectRepo, clk, logger.Named("documents")),
		Learners:  learner.NewService(learnerRepo, clk, logger.Named("learners")),
		Programs:  program.NewService(sqlite.NewProgramRepository(db), clk, logger.Named("programs")),
		Reports:   report.NewService(sqlite.NewReportRepository(db), projectRepo, logger.Named("reports")),
	}
}

// Close releases the database and flushes the logger.
func (a *App) Close() {
	_ = a.Logger.Sync()
	a.DB.Close()
}

// Actor resolves the acting user named by --actor.
func (a *App) Actor(ctx context.Context, id string) (user.Actor, error) {
	if id == "" {
		return user.Actor{}, NewExitError(ExitCommandError, "this command requires --actor <user-id>")
	}
	return a.Users.ResolveActor(ctx, id)
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
