package book

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/application/common"
	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/pkg/metrics"
	"github.com/xiebiao/bookshelf/pkg/tracing"
)

// UpdateBookUseCase 更新图书用例
type UpdateBookUseCase struct {
	bookService book.Service
	txManager   common.Transactor
	cache       common.ViewCache
	events      common.EventPublisher
	logger      *zap.Logger
}

// NewUpdateBookUseCase 创建更新图书用例
func NewUpdateBookUseCase(
	bookService book.Service,
	txManager common.Transactor,
	cache common.ViewCache,
	events common.EventPublisher,
	logger *zap.Logger,
) *UpdateBookUseCase {
	return &UpdateBookUseCase{
		bookService: bookService,
		txManager:   txManager,
		cache:       cache,
		events:      events,
		logger:      logger,
	}
}

// UpdateBookRequest 更新图书请求
// AuthorName必须与当前作者一致
type UpdateBookRequest struct {
	ID              uint
	Title           string
	PublicationDate time.Time
	ISBN            string
	AuthorName      string
}

// Execute 执行更新图书用例
func (uc *UpdateBookUseCase) Execute(ctx context.Context, req UpdateBookRequest) (err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "UpdateBook")
	span.SetAttributes(attribute.Int64("book.id", int64(req.ID)))
	defer func() {
		metrics.RecordOperation(metrics.BookOperationsTotal, "update", err)
		tracing.EndSpan(span, err)
	}()

	var updated *book.Book
	err = uc.txManager.Transaction(ctx, func(ctx context.Context) error {
		b, err := uc.bookService.UpdateBook(ctx, req.ID, book.UpdateParams{
			Title:           req.Title,
			PublicationDate: req.PublicationDate,
			ISBN:            req.ISBN,
			AuthorName:      req.AuthorName,
		})
		if err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return err
	}

	common.AfterWrite(ctx, uc.cache, uc.events, uc.logger,
		common.NewEvent(common.EventBookUpdated, updated.ID, toBookResponse(updated)))
	return nil
}
