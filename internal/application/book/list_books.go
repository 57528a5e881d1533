package book

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/application/common"
	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/pkg/tracing"
)

// ListBooksUseCase 图书列表用例
type ListBooksUseCase struct {
	bookService book.Service
	cache       common.ViewCache
	logger      *zap.Logger
}

// NewListBooksUseCase 创建图书列表用例
func NewListBooksUseCase(bookService book.Service, cache common.ViewCache, logger *zap.Logger) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookService: bookService,
		cache:       cache,
		logger:      logger,
	}
}

// Execute 查询全部图书(按ID升序)
func (uc *ListBooksUseCase) Execute(ctx context.Context) (list []BookResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "ListBooks")
	defer func() { tracing.EndSpan(span, err) }()

	return common.ReadThrough(ctx, uc.cache, uc.logger, common.KeyBookList, func(ctx context.Context) ([]BookResponse, error) {
		books, err := uc.bookService.ListBooks(ctx)
		if err != nil {
			return nil, err
		}

		views := make([]BookResponse, len(books))
		for i, b := range books {
			views[i] = *toBookResponse(b)
		}
		return views, nil
	})
}
