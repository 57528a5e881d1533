package main

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/bookshelf/internal/application/common"
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/internal/infrastructure/messaging"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookshelf/pkg/mq"
	"github.com/xiebiao/bookshelf/pkg/tracing"
)

// 可选组件（Redis、RabbitMQ、OTLP）未启用时返回Nop实现，
// 返回的cleanup函数在进程退出时按逆序调用

// provideDB 创建数据库连接
func provideDB(cfg *config.Config) (*gorm.DB, func(), error) {
	db, err := mysql.NewDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

// provideViewCache 创建视图缓存
func provideViewCache(ctx context.Context, cfg *config.Config, logger *zap.Logger) (common.ViewCache, func(), error) {
	if !cfg.Redis.Enabled {
		logger.Info("Redis未启用，视图缓存关闭")
		return common.NopCache{}, func() {}, nil
	}

	client, err := redis.NewClient(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := client.Close(); err != nil {
			logger.Warn("关闭Redis连接失败", zap.Error(err))
		}
	}
	return redis.NewViewCache(client, cfg.Redis.CacheTTL), cleanup, nil
}

// provideEventPublisher 创建领域事件发布器
func provideEventPublisher(cfg *config.Config, logger *zap.Logger) (common.EventPublisher, func(), error) {
	if !cfg.MQ.Enabled {
		logger.Info("MQ未启用，领域事件不发布")
		return common.NopPublisher{}, func() {}, nil
	}

	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("关闭RabbitMQ连接失败", zap.Error(err))
		}
	}
	return messaging.NewEventPublisher(publisher, logger), cleanup, nil
}

// provideTracer 初始化OTLP链路追踪
func provideTracer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (func(), error) {
	if !cfg.Tracing.Enabled {
		return func() {}, nil
	}

	shutdown, err := tracing.InitTracer(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
	if err != nil {
		return nil, err
	}
	logger.Info("链路追踪已启用", zap.String("endpoint", cfg.Tracing.Endpoint))
	return func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn("关闭TracerProvider失败", zap.Error(err))
		}
	}, nil
}

// provideTransactor 事务管理器作为应用层的Transactor
func provideTransactor(db *gorm.DB) common.Transactor {
	return mysql.NewTxManager(db)
}
