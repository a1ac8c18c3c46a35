package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rpggio/intentcat/internal/config"
	"github.com/rpggio/intentcat/internal/domain/activity"
	"github.com/rpggio/intentcat/internal/domain/category"
	"github.com/rpggio/intentcat/internal/domain/intent"
	"github.com/rpggio/intentcat/internal/domain/recognition"
	"github.com/rpggio/intentcat/internal/sqlite"
	"github.com/spf13/cobra"
)

// app holds the wired services shared by every command.
type app struct {
	cfg         config.Config
	logger      *slog.Logger
	db          *sqlite.DB
	apiKeys     *sqlite.APIKeyRepository
	intents     *intent.Service
	categories  *category.Service
	activity    *activity.Service
	recognition *recognition.Service
	tenantID    string
	logFile     *os.File
}

// openApp loads config, applies global flags, opens and migrates the
// database and wires the domain services. logTarget picks the log
// destination from the loaded config unless INTENTCAT_LOG_PATH redirects
// logs to a file.
func openApp(logTarget func(config.Config) io.Writer) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	if dbPath != "" {
		cfg.DB.Path = dbPath
	}

	a := &app{cfg: cfg, tenantID: cfg.Auth.DefaultTenant}
	if tenantID != "" {
		a.tenantID = tenantID
	}

	logWriter := logTarget(cfg)
	if cfg.Log.Path != "" {
		fileWriter, file, err := newLogFileWriter(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			a.logFile = file
			logWriter = fileWriter
		}
	}
	a.logger = slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to prepare database path: %w", err)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.db = db

	if err := db.RunMigrations(); err != nil {
		a.Close()
		return nil, err
	}

	intentRepo := sqlite.NewIntentRepository(db)
	categoryRepo := sqlite.NewCategoryRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)

	a.apiKeys = sqlite.NewAPIKeyRepository(db)
	a.intents = intent.NewService(intentRepo, categoryRepo, activityRepo, a.logger)
	a.categories = category.NewService(categoryRepo, activityRepo, a.logger)
	a.activity = activity.NewService(activityRepo, a.logger)
	a.recognition = recognition.NewService(intentRepo, recognition.Config{
		BatchWorkers: cfg.Recognition.BatchWorkers,
	}, a.logger)

	return a, nil
}

// Close releases the database and log file.
func (a *app) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}

// stderrLogs sends logs to the command's stderr, keeping stdout for results.
func stderrLogs(cmd *cobra.Command) func(config.Config) io.Writer {
	return func(config.Config) io.Writer { return cmd.ErrOrStderr() }
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

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
