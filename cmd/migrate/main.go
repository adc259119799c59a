// Command migrate creates or updates the account tables and exits.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gab-correia/w1-app/internal/core/config"
	"github.com/gab-correia/w1-app/internal/core/database"
	"github.com/gab-correia/w1-app/internal/core/logger"
	"github.com/gab-correia/w1-app/internal/feature/user"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	db, err := database.NewGorm(database.Opts{
		Driver:   cfg.DB.Driver,
		DSN:      cfg.DB.DSN,
		LogLevel: "info",
		Log:      logger.ToStdLogger(log.Named("gorm"), zapcore.InfoLevel),
	})
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	models := user.Models()
	if err := database.Migrate(db, models...); err != nil {
		log.Error("migrate failed", zap.Error(err))
		cleanup()
		os.Exit(1)
	}
	log.Info("migrate done", zap.String("driver", cfg.DB.Driver), zap.Int("tables", len(models)))
}
