package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/application/common"
	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/pkg/tracing"
)

// GetBookUseCase 图书详情用例
type GetBookUseCase struct {
	bookService book.Service
	cache       common.ViewCache
	logger      *zap.Logger
}

// NewGetBookUseCase 创建图书详情用例
func NewGetBookUseCase(bookService book.Service, cache common.ViewCache, logger *zap.Logger) *GetBookUseCase {
	return &GetBookUseCase{
		bookService: bookService,
		cache:       cache,
		logger:      logger,
	}
}

// Execute 根据ID查询图书，不存在返回book.ErrBookNotFound
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (resp *BookResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "GetBook")
	span.SetAttributes(attribute.Int64("book.id", int64(id)))
	defer func() { tracing.EndSpan(span, err) }()

	return common.ReadThrough(ctx, uc.cache, uc.logger, common.BookKey(id), func(ctx context.Context) (*BookResponse, error) {
		b, err := uc.bookService.GetBookByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return toBookResponse(b), nil
	})
}
