package cmd

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/cuentas/invoice-tracker/internal/core/domain"
	"github.com/cuentas/invoice-tracker/internal/core/ports"
	"github.com/cuentas/invoice-tracker/internal/infrastructure/db/gormdb"
	"github.com/cuentas/invoice-tracker/internal/infrastructure/db/redis"
)

func openDatabase(ctx context.Context) (*gorm.DB, error) {
	db, err := gormdb.Connect(ctx, gormdb.Config{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.Database.DSN,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		Debug:        cfg.Database.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	log.Info().Str("driver", cfg.Database.Driver).Msg("connected to database")
	return db, nil
}

// openRedis returns nil when no address is configured.
func openRedis(ctx context.Context) (*goredis.Client, error) {
	if cfg.Redis.Addr == "" {
		log.Warn().Msg("REDIS_ADDR not set, refresh-token revocation disabled")
		return nil, nil
	}
	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")
	return rdb, nil
}

type repositories struct {
	users         *gormdb.GormUserRepository
	clients       *gormdb.GormPartyRepository
	suppliers     *gormdb.GormPartyRepository
	invoices      *gormdb.GormInvoiceRepository
	notifications *gormdb.GormNotificationRepository
	dashboard     *gormdb.GormDashboardRepository
}

func newRepositories(db *gorm.DB, clock domain.Clock) repositories {
	return repositories{
		users:         gormdb.NewGormUserRepository(db),
		clients:       gormdb.NewGormClientRepository(db),
		suppliers:     gormdb.NewGormSupplierRepository(db),
		invoices:      gormdb.NewGormInvoiceRepository(db, clock),
		notifications: gormdb.NewGormNotificationRepository(db),
		dashboard:     gormdb.NewGormDashboardRepository(db),
	}
}

func revocationList(rdb *goredis.Client) ports.RevocationList {
	if rdb == nil {
		return nil
	}
	return redis.NewRevocationList(rdb)
}
