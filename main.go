package main

import (
	"context"
	"fmt"
	"log"

	"github.com/Salvaberticci/proyecto-laboratorio/config"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/api"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/database"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/services"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/session"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/store"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/store/gormstore"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/store/memstore"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/utils"
	"github.com/Salvaberticci/proyecto-laboratorio/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/thejerf/abtime"
	"go.uber.org/zap"
)

// @title Laboratorio API
// @version 1.0
// @description JSON API of the laboratory management system.

// @host localhost:8888
// @BasePath /api

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	if err := logger.InitLogger(cfg.LoggerConfig()); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config) error {
	ctx := context.Background()
	gin.SetMode(cfg.GinMode)
	clock := abtime.NewRealTime()

	s, err := openStore(cfg, clock)
	if err != nil {
		return err
	}
	defer s.Close()

	var rdb *redis.Client
	if cfg.SessionBackend == config.SessionRedis {
		if rdb, err = database.ConnectRedis(ctx, cfg); err != nil {
			return err
		}
		defer rdb.Close()
	}

	secret := cfg.JWTSecret
	if secret == "" {
		// Only reachable in debug mode; tokens do not survive a restart.
		secret = uuid.NewString()
		logger.Log.Warn("JWT_SECRET not set, using a random secret")
	}
	tokens := utils.NewTokenManager(secret, cfg.TokenTTL).WithClock(clock.Now)

	var (
		sessions session.Store
		denylist services.TokenDenylist
	)
	if rdb != nil {
		sessions = session.NewRedisStore(rdb, cfg.SessionTTL)
		denylist = services.NewRedisDenylist(rdb)
	} else {
		sessions = session.NewRAMStore(cfg.SessionTTL, clock)
		denylist = services.NewMemoryDenylist(clock)
	}

	authSvc := services.NewAuthService(s, sessions, tokens, denylist)
	userSvc := services.NewUserService(s)

	if cfg.SeedDemoData {
		if err := store.Seed(ctx, s); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
	}
	if _, err := authSvc.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	router, err := api.NewRouter(api.Deps{
		Config: cfg,
		Store:  s,
		Auth:   authSvc,
		Users:  userSvc,
		Clock:  clock,
	})
	if err != nil {
		return err
	}

	logger.Log.Info("server starting",
		zap.String("addr", cfg.Addr()),
		zap.String("storage", cfg.StorageDriver),
		zap.String("sessions", cfg.SessionBackend))
	return router.Run(cfg.Addr())
}

func openStore(cfg *config.Config, clock abtime.AbstractTime) (store.Store, error) {
	if cfg.StorageDriver == config.StorageMemory {
		return memstore.New(memstore.WithClock(clock)), nil
	}
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	return gormstore.New(db, gormstore.WithClock(clock))
}
