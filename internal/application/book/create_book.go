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

// CreateBookUseCase 创建图书用例
// 流程:事务内(校验 → ISBN查重 → 查作者 → 写图书和关联) → 缓存失效 → 发布book.created
type CreateBookUseCase struct {
	bookService book.Service
	txManager   common.Transactor
	cache       common.ViewCache
	events      common.EventPublisher
	logger      *zap.Logger
}

// NewCreateBookUseCase 创建图书用例
func NewCreateBookUseCase(
	bookService book.Service,
	txManager common.Transactor,
	cache common.ViewCache,
	events common.EventPublisher,
	logger *zap.Logger,
) *CreateBookUseCase {
	return &CreateBookUseCase{
		bookService: bookService,
		txManager:   txManager,
		cache:       cache,
		events:      events,
		logger:      logger,
	}
}

// CreateBookRequest 创建图书请求
type CreateBookRequest struct {
	Title           string
	PublicationDate time.Time
	ISBN            string
	AuthorName      string
}

// Execute 执行创建图书用例
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (resp *BookResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "CreateBook")
	defer func() {
		metrics.RecordOperation(metrics.BookOperationsTotal, "create", err)
		tracing.EndSpan(span, err)
	}()

	var created *book.Book
	err = uc.txManager.Transaction(ctx, func(ctx context.Context) error {
		b, err := uc.bookService.CreateBook(ctx, book.CreateParams{
			Title:           req.Title,
			PublicationDate: req.PublicationDate,
			ISBN:            req.ISBN,
			AuthorName:      req.AuthorName,
		})
		if err != nil {
			return err
		}
		created = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int64("book.id", int64(created.ID)))
	resp = toBookResponse(created)
	common.AfterWrite(ctx, uc.cache, uc.events, uc.logger,
		common.NewEvent(common.EventBookCreated, created.ID, resp))

	uc.logger.Info("图书已创建",
		zap.Uint("book_id", created.ID),
		zap.String("isbn", created.ISBN),
		zap.String("author", created.AuthorName),
	)
	return resp, nil
}
