package handler

import (
	"context"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/internal/interface/http/middleware"
	"github.com/xiebiao/bookshelf/pkg/tracing"
)

// pingTimeout 健康检查中数据库Ping的超时
const pingTimeout = 2 * time.Second

// NewRouter 创建Gin引擎并注册全部路由
//
// 中间件顺序：访问日志 → Panic恢复 → 请求ID → 链路追踪 → 指标
func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	bookHandler *BookHandler,
	authorHandler *AuthorHandler,
) *gin.Engine {
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()
	r.Use(ginzap.GinzapWithConfig(logger, &ginzap.Config{
		TimeFormat: time.RFC3339,
		UTC:        true,
		SkipPaths:  []string{"/ping", cfg.Metrics.Path},
		Context: func(c *gin.Context) []zapcore.Field {
			fields := []zapcore.Field{zap.String("request_id", middleware.GetRequestID(c))}
			if traceID := tracing.ExtractTraceID(c.Request.Context()); traceID != "" {
				fields = append(fields, zap.String("trace_id", traceID))
			}
			return fields
		},
	}))
	r.Use(ginzap.RecoveryWithZap(logger, true))
	r.Use(middleware.RequestID())
	if cfg.Tracing.Enabled {
		r.Use(middleware.Tracing(cfg.Tracing.ServiceName)...)
	}
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics())
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
		defer cancel()

		if err := pingDB(ctx, db); err != nil {
			logger.Warn("健康检查失败", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "database": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "healthy"})
	})

	// Swagger文档只在debug模式开放
	if cfg.Server.Mode == "debug" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	books := r.Group("/books")
	{
		books.GET("", bookHandler.ListBooks)
		books.GET("/:id", bookHandler.GetBook)
		books.POST("", bookHandler.CreateBook)
		books.PUT("/:id", bookHandler.UpdateBook)
		books.DELETE("/:id", bookHandler.DeleteBook)
	}

	authors := r.Group("/authors")
	{
		authors.GET("", authorHandler.ListAuthors)
		authors.GET("/:id", authorHandler.GetAuthor)
		authors.POST("", authorHandler.CreateAuthor)
		authors.PUT("/:id", authorHandler.UpdateAuthor)
		authors.DELETE("/:id", authorHandler.DeleteAuthor)
	}

	return r
}

func pingDB(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
