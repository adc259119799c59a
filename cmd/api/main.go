package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"github.com/gab-correia/w1-app/internal/core/auth"
	"github.com/gab-correia/w1-app/internal/core/cache"
	"github.com/gab-correia/w1-app/internal/core/config"
	"github.com/gab-correia/w1-app/internal/core/database"
	"github.com/gab-correia/w1-app/internal/core/logger"
	"github.com/gab-correia/w1-app/internal/core/server"
	"github.com/gab-correia/w1-app/internal/feature/user"
	"github.com/gab-correia/w1-app/internal/repo"
	"github.com/gab-correia/w1-app/internal/service"
	"github.com/gab-correia/w1-app/internal/transport/http/handler"
	"github.com/gab-correia/w1-app/internal/transport/http/router"
	"github.com/gab-correia/w1-app/pkg/utils"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, cleanup := logger.Build(logger.Options{
		Level:       cfg.Log.Level,
		JSON:        cfg.Log.JSON,
		AddCaller:   true,
		Development: cfg.App.Env == "dev",
		Rotate: logger.FileRotate{
			Filename:   cfg.Log.File,
			MaxSizeMB:  cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAgeDays: cfg.Log.MaxAgeDays,
			Compress:   true,
		},
	})
	defer cleanup()
	defer logger.RedirectStdLog(log)()
	if cfg.App.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	db := mustOpenDB(cfg, log)
	defer func() { _ = database.Close(db) }()
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(db, user.Models()...); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	jwter, err := auth.NewJWTer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL())
	if err != nil {
		log.Fatal("jwt", zap.Error(err))
	}

	accounts := repo.NewUserRepo(db)
	hasher := utils.NewHasher(cfg.Auth.BcryptCost, cfg.Auth.HashConcurrency)
	authSvc := service.NewAuthService(accounts, hasher, jwter, log)

	profiles := mustOpenCache(cfg, log)
	if profiles != nil {
		defer func() { _ = profiles.Close() }()
	}

	r := router.NewAPIEngine(log, jwter, router.Options{
		RequestTimeout: time.Duration(cfg.App.HTTP.RequestTimeoutSec) * time.Second,
		MaxBodyBytes:   cfg.App.HTTP.MaxBodyBytes,
		MaxInFlight:    cfg.App.HTTP.MaxInFlight,
		CORSOrigins:    cfg.App.HTTP.CORSOrigins,

		GlobalRatePerSec: cfg.App.HTTP.RatePerSec,
		GlobalRateBurst:  cfg.App.HTTP.RateBurst,
		AuthRatePerSec:   cfg.Auth.RatePerSec,
		AuthRateBurst:    cfg.Auth.RateBurst,
	},
		handler.NewAuthHandler(authSvc),
		handler.NewAccountHandler(accounts, profiles, time.Duration(cfg.Redis.TTLSec)*time.Second),
	)

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api", baseURL+"/api"),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("api start failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("shutdown", zap.Error(err))
	}
	log.Info("api stopped gracefully")
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Log:                logger.ToStdLogger(l.Named("gorm"), zapcore.WarnLevel),
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}

// mustOpenCache returns nil when redis.addr is unset. An unreachable Redis
// is logged and the service runs uncached.
func mustOpenCache(cfg *config.Config, l *zap.Logger) *cache.Cache {
	if cfg.Redis.Addr == "" {
		return nil
	}
	c := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.Ping(ctx); err != nil {
		l.Warn("redis unreachable, profile cache degraded", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
	} else {
		l.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
	}
	return c
}
