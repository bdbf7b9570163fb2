package app

import (
	"database/sql"
	"fmt"

	"github.com/andreicionca/motivare-absente/internal/config"
	"github.com/andreicionca/motivare-absente/internal/excuse"
	"github.com/andreicionca/motivare-absente/internal/holiday"
	"github.com/andreicionca/motivare-absente/internal/messaging/kafka"
	"github.com/andreicionca/motivare-absente/internal/school"
	"github.com/andreicionca/motivare-absente/internal/shared/connection"
	"github.com/andreicionca/motivare-absente/internal/shortleave"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App owns the connections opened for the HTTP process.
type App struct {
	GormDB *gorm.DB
	DB     *sql.DB
	Redis  *redis.Client
}

func (a *App) Close() {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
}

func postgresConfig(cfg *config.Config) connection.PostgresConfig {
	return connection.PostgresConfig{
		Host:     cfg.DB.Host,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Name:     cfg.DB.Name,
		Port:     cfg.DB.Port,
		SSLMode:  cfg.DB.SSLMode,
	}
}

// Migrate creates the tables of every module plus the outbox.
func Migrate(gormDB *gorm.DB, db *sql.DB) error {
	if err := gormDB.AutoMigrate(
		&school.Student{},
		&school.Parent{},
		&school.Teacher{},
		&holiday.Holiday{},
		&excuse.Excuse{},
		&shortleave.ShortLeave{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if _, err := db.Exec(kafka.Schema); err != nil {
		return fmt.Errorf("outbox schema: %w", err)
	}
	return nil
}

func BuildApp(router *gin.Engine, cfg *config.Config) (*App, error) {
	logger := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(postgresConfig(cfg), cfg.DB.MaxRetries)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	a := &App{GormDB: gormDB, DB: sqlDB}

	if err := Migrate(gormDB, sqlDB); err != nil {
		a.Close()
		return nil, err
	}
	logger.Info("database ready")

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.DB.MaxRetries)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Redis = redisClient

	if err := registerModules(router, cfg, sqlDB, gormDB, redisClient); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}
