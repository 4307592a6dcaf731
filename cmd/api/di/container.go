package di

import (
	"context"
	"errors"
	"fmt"
	"time"

	"user-directory-service/cmd/api/infrastructure"
	"user-directory-service/internal/adapter/cache"
	"user-directory-service/internal/adapter/db/postgres"
	ginhandler "user-directory-service/internal/adapter/gin/handler"
	grpcadapter "user-directory-service/internal/adapter/grpc"
	"user-directory-service/internal/adapter/repository/cached"
	"user-directory-service/internal/config"
	"user-directory-service/internal/usecase/user"
	"user-directory-service/pkg/identifier"
	"user-directory-service/pkg/password"
	redisclient "user-directory-service/pkg/redis"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	DB          *gorm.DB
	RedisClient *redisclient.Client // nil when the cache is disabled
	UserRepo    *postgres.UserRepoPG
	UserUC      user.Usecase
	GinHandler  *ginhandler.UserHandler
	GRPCService *grpcadapter.UserServiceServer
}

// NewContainer creates and initializes all application dependencies
func NewContainer(ctx context.Context, cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	hasher, err := password.NewHasher(cfg.Security.PasswordHashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to create password hasher: %w", err)
	}

	db, err := infrastructure.NewDatabase(ctx, cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	c := &Container{
		Config:   cfg,
		Logger:   l,
		DB:       db,
		UserRepo: postgres.NewUserRepoPG(db, l, identifier.New),
	}

	var repo user.Repository = c.UserRepo
	if cfg.Redis.Enabled {
		rdb, err := infrastructure.NewRedisClient(ctx, cfg, l)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		c.RedisClient = rdb

		userCache := cache.NewRedisUserCache(
			rdb.Client,
			time.Duration(cfg.Redis.CacheTTL)*time.Second,
			l,
		)
		repo = cached.NewCachedUserRepository(c.UserRepo, userCache, l)
	} else {
		l.Info("user cache disabled")
	}

	c.UserUC = user.New(repo, hasher, identifier.Valid, l)
	c.GinHandler = ginhandler.NewUserHandler(c.UserUC, l)
	c.GRPCService = grpcadapter.NewUserServiceServer(c.UserUC, l)

	return c, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	// Close Redis connection
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	// Close database connection
	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	return errors.Join(errs...)
}
