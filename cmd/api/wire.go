//go:build wireinject
// +build wireinject

// Wire依赖注入配置
// 生成代码：wire gen ./cmd/api
// wire_gen.go中的InitializeApp与main.go的newApp组装结果相同

package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"go.uber.org/zap"

	appauthor "github.com/xiebiao/bookshelf/internal/application/author"
	appbook "github.com/xiebiao/bookshelf/internal/application/book"
	"github.com/xiebiao/bookshelf/internal/domain/author"
	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookshelf/internal/interface/http/handler"
)

// infrastructureSet 数据库、缓存、事件、事务
var infrastructureSet = wire.NewSet(
	provideDB,
	provideViewCache,
	provideEventPublisher,
	provideTransactor,
)

// repositorySet 仓储
var repositorySet = wire.NewSet(
	mysql.NewBookRepository,
	mysql.NewAuthorRepository,
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	book.NewService,
	author.NewService,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	appbook.NewListBooksUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewCreateBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	appauthor.NewListAuthorsUseCase,
	appauthor.NewGetAuthorUseCase,
	appauthor.NewCreateAuthorUseCase,
	appauthor.NewUpdateAuthorUseCase,
	appauthor.NewDeleteAuthorUseCase,
)

// handlerSet HTTP处理器与路由
var handlerSet = wire.NewSet(
	handler.NewBookHandler,
	handler.NewAuthorHandler,
	handler.NewRouter,
)

// InitializeApp 初始化整个应用，cleanup按逆序释放数据库、Redis、RabbitMQ连接
func InitializeApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		handlerSet,
	)
	return nil, nil, nil
}
