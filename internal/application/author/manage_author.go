package author

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/application/common"
	"github.com/xiebiao/bookshelf/internal/domain/author"
	"github.com/xiebiao/bookshelf/pkg/metrics"
	"github.com/xiebiao/bookshelf/pkg/tracing"
)

// writeDeps 作者写用例的公共依赖
type writeDeps struct {
	authorService author.Service
	txManager     common.Transactor
	cache         common.ViewCache
	events        common.EventPublisher
	logger        *zap.Logger
}

func (d *writeDeps) afterWrite(ctx context.Context, event common.Event) {
	common.AfterWrite(ctx, d.cache, d.events, d.logger, event)
}

// =========================================
// 创建作者
// =========================================

// CreateAuthorUseCase 创建作者用例
type CreateAuthorUseCase struct {
	writeDeps
}

// NewCreateAuthorUseCase 创建作者用例
func NewCreateAuthorUseCase(
	authorService author.Service,
	txManager common.Transactor,
	cache common.ViewCache,
	events common.EventPublisher,
	logger *zap.Logger,
) *CreateAuthorUseCase {
	return &CreateAuthorUseCase{writeDeps{authorService, txManager, cache, events, logger}}
}

// Execute 创建作者，名称不能为空白且不能重复
func (uc *CreateAuthorUseCase) Execute(ctx context.Context, name string) (resp *AuthorResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "CreateAuthor")
	defer func() {
		metrics.RecordOperation(metrics.AuthorOperationsTotal, "create", err)
		tracing.EndSpan(span, err)
	}()

	var created *author.Author
	err = uc.txManager.Transaction(ctx, func(ctx context.Context) error {
		a, err := uc.authorService.CreateAuthor(ctx, name)
		if err != nil {
			return err
		}
		created = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int64("author.id", int64(created.ID)))
	resp = toAuthorResponse(created)
	uc.afterWrite(ctx, common.NewEvent(common.EventAuthorCreated, created.ID, resp))

	uc.logger.Info("作者已创建", zap.Uint("author_id", created.ID), zap.String("name", created.Name))
	return resp, nil
}

// =========================================
// 更新作者
// =========================================

// UpdateAuthorUseCase 更新作者用例
type UpdateAuthorUseCase struct {
	writeDeps
}

// NewUpdateAuthorUseCase 创建更新作者用例
func NewUpdateAuthorUseCase(
	authorService author.Service,
	txManager common.Transactor,
	cache common.ViewCache,
	events common.EventPublisher,
	logger *zap.Logger,
) *UpdateAuthorUseCase {
	return &UpdateAuthorUseCase{writeDeps{authorService, txManager, cache, events, logger}}
}

// Execute 修改作者名
func (uc *UpdateAuthorUseCase) Execute(ctx context.Context, id uint, name string) (err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "UpdateAuthor")
	span.SetAttributes(attribute.Int64("author.id", int64(id)))
	defer func() {
		metrics.RecordOperation(metrics.AuthorOperationsTotal, "update", err)
		tracing.EndSpan(span, err)
	}()

	var updated *author.Author
	err = uc.txManager.Transaction(ctx, func(ctx context.Context) error {
		a, err := uc.authorService.UpdateAuthor(ctx, id, name)
		if err != nil {
			return err
		}
		updated = a
		return nil
	})
	if err != nil {
		return err
	}

	// 改名会影响该作者图书的authorName，AfterWrite整体失效视图缓存
	uc.afterWrite(ctx, common.NewEvent(common.EventAuthorUpdated, updated.ID, map[string]string{
		"name": updated.Name,
	}))
	return nil
}

// =========================================
// 删除作者
// =========================================

// DeleteAuthorUseCase 删除作者用例(级联删除其全部图书)
type DeleteAuthorUseCase struct {
	writeDeps
}

// NewDeleteAuthorUseCase 创建删除作者用例
func NewDeleteAuthorUseCase(
	authorService author.Service,
	txManager common.Transactor,
	cache common.ViewCache,
	events common.EventPublisher,
	logger *zap.Logger,
) *DeleteAuthorUseCase {
	return &DeleteAuthorUseCase{writeDeps{authorService, txManager, cache, events, logger}}
}

// AuthorDeletedPayload author.deleted事件内容
type AuthorDeletedPayload struct {
	DeletedBookIDs []uint `json:"deletedBookIds"`
}

// Execute 删除作者、其全部图书及关联记录
func (uc *DeleteAuthorUseCase) Execute(ctx context.Context, id uint) (err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "DeleteAuthor")
	span.SetAttributes(attribute.Int64("author.id", int64(id)))
	defer func() {
		metrics.RecordOperation(metrics.AuthorOperationsTotal, "delete", err)
		tracing.EndSpan(span, err)
	}()

	var bookIDs []uint
	err = uc.txManager.Transaction(ctx, func(ctx context.Context) error {
		ids, err := uc.authorService.DeleteAuthor(ctx, id)
		if err != nil {
			return err
		}
		bookIDs = ids
		return nil
	})
	if err != nil {
		return err
	}

	span.SetAttributes(attribute.Int("author.deleted_books", len(bookIDs)))
	if bookIDs == nil {
		bookIDs = []uint{}
	}
	uc.afterWrite(ctx, common.NewEvent(common.EventAuthorDeleted, id, AuthorDeletedPayload{DeletedBookIDs: bookIDs}))

	uc.logger.Info("作者已删除", zap.Uint("author_id", id), zap.Int("deleted_books", len(bookIDs)))
	return nil
}
