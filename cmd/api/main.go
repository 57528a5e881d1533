package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appauthor "github.com/xiebiao/bookshelf/internal/application/author"
	appbook "github.com/xiebiao/bookshelf/internal/application/book"
	"github.com/xiebiao/bookshelf/internal/domain/author"
	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookshelf/internal/interface/http/handler"
	"github.com/xiebiao/bookshelf/pkg/logger"
)

// @title        Bookshelf API
// @version      1.0
// @description  图书与作者管理服务
// @BasePath     /
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 初始化日志
	zl, err := logger.New(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	zap.ReplaceGlobals(zl)

	if err := run(cfg, zl); err != nil {
		zl.Fatal("服务异常退出", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	zl.Info("配置加载成功",
		zap.Int("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Bool("redis", cfg.Redis.Enabled),
		zap.Bool("mq", cfg.MQ.Enabled),
		zap.Bool("tracing", cfg.Tracing.Enabled),
	)

	shutdownTracer, err := provideTracer(ctx, cfg, zl)
	if err != nil {
		return err
	}
	defer shutdownTracer()

	engine, cleanup, err := newApp(ctx, cfg, zl)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("HTTP服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP服务启动失败: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	// 优雅关闭：停止接收新请求，等待处理中的请求完成
	zl.Info("收到退出信号，开始关闭服务")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("关闭HTTP服务失败: %w", err)
	}
	zl.Info("服务已关闭")
	return nil
}

// newApp 手动组装依赖，与wire.go中的InitializeApp保持一致
// 依赖链：Repository ← Service ← UseCase ← Handler ← Router
func newApp(ctx context.Context, cfg *config.Config, zl *zap.Logger) (*gin.Engine, func(), error) {
	db, closeDB, err := provideDB(cfg)
	if err != nil {
		return nil, nil, err
	}

	cache, closeCache, err := provideViewCache(ctx, cfg, zl)
	if err != nil {
		closeDB()
		return nil, nil, err
	}

	events, closeEvents, err := provideEventPublisher(cfg, zl)
	if err != nil {
		closeCache()
		closeDB()
		return nil, nil, err
	}

	cleanup := func() {
		closeEvents()
		closeCache()
		closeDB()
	}

	// 基础设施层
	bookRepo := mysql.NewBookRepository(db)
	authorRepo := mysql.NewAuthorRepository(db)
	txManager := provideTransactor(db)

	// 领域层
	bookService := book.NewService(bookRepo, authorRepo)
	authorService := author.NewService(authorRepo)

	// 接口层
	bookHandler := handler.NewBookHandler(
		appbook.NewListBooksUseCase(bookService, cache, zl),
		appbook.NewGetBookUseCase(bookService, cache, zl),
		appbook.NewCreateBookUseCase(bookService, txManager, cache, events, zl),
		appbook.NewUpdateBookUseCase(bookService, txManager, cache, events, zl),
		appbook.NewDeleteBookUseCase(bookService, txManager, cache, events, zl),
	)
	authorHandler := handler.NewAuthorHandler(
		appauthor.NewListAuthorsUseCase(authorService, cache, zl),
		appauthor.NewGetAuthorUseCase(authorService, cache, zl),
		appauthor.NewCreateAuthorUseCase(authorService, txManager, cache, events, zl),
		appauthor.NewUpdateAuthorUseCase(authorService, txManager, cache, events, zl),
		appauthor.NewDeleteAuthorUseCase(authorService, txManager, cache, events, zl),
	)

	return handler.NewRouter(cfg, zl, db, bookHandler, authorHandler), cleanup, nil
}
