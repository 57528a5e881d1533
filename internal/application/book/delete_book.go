package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/application/common"
	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/pkg/metrics"
	"github.com/xiebiao/bookshelf/pkg/tracing"
)

// DeleteBookUseCase 删除图书用例
type DeleteBookUseCase struct {
	bookService book.Service
	txManager   common.Transactor
	cache       common.ViewCache
	events      common.EventPublisher
	logger      *zap.Logger
}

// NewDeleteBookUseCase 创建删除图书用例
func NewDeleteBookUseCase(
	bookService book.Service,
	txManager common.Transactor,
	cache common.ViewCache,
	events common.EventPublisher,
	logger *zap.Logger,
) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookService: bookService,
		txManager:   txManager,
		cache:       cache,
		events:      events,
		logger:      logger,
	}
}

// Execute 删除图书及其关联记录
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) (err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "DeleteBook")
	span.SetAttributes(attribute.Int64("book.id", int64(id)))
	defer func() {
		metrics.RecordOperation(metrics.BookOperationsTotal, "delete", err)
		tracing.EndSpan(span, err)
	}()

	var deleted *book.Book
	err = uc.txManager.Transaction(ctx, func(ctx context.Context) error {
		b, err := uc.bookService.DeleteBook(ctx, id)
		if err != nil {
			return err
		}
		deleted = b
		return nil
	})
	if err != nil {
		return err
	}

	common.AfterWrite(ctx, uc.cache, uc.events, uc.logger,
		common.NewEvent(common.EventBookDeleted, deleted.ID, toBookResponse(deleted)))

	uc.logger.Info("图书已删除", zap.Uint("book_id", deleted.ID), zap.String("isbn", deleted.ISBN))
	return nil
}
