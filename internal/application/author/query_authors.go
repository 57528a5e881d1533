package author

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/application/common"
	"github.com/xiebiao/bookshelf/internal/domain/author"
	"github.com/xiebiao/bookshelf/pkg/tracing"
)

// ListAuthorsUseCase 作者列表用例
type ListAuthorsUseCase struct {
	authorService author.Service
	cache         common.ViewCache
	logger        *zap.Logger
}

// NewListAuthorsUseCase 创建作者列表用例
func NewListAuthorsUseCase(authorService author.Service, cache common.ViewCache, logger *zap.Logger) *ListAuthorsUseCase {
	return &ListAuthorsUseCase{authorService: authorService, cache: cache, logger: logger}
}

// Execute 查询全部作者(按ID升序)
func (uc *ListAuthorsUseCase) Execute(ctx context.Context) (list []AuthorResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "ListAuthors")
	defer func() { tracing.EndSpan(span, err) }()

	return common.ReadThrough(ctx, uc.cache, uc.logger, common.KeyAuthorList, func(ctx context.Context) ([]AuthorResponse, error) {
		authors, err := uc.authorService.ListAuthors(ctx)
		if err != nil {
			return nil, err
		}

		views := make([]AuthorResponse, len(authors))
		for i, a := range authors {
			views[i] = *toAuthorResponse(a)
		}
		return views, nil
	})
}

// GetAuthorUseCase 作者详情用例
type GetAuthorUseCase struct {
	authorService author.Service
	cache         common.ViewCache
	logger        *zap.Logger
}

// NewGetAuthorUseCase 创建作者详情用例
func NewGetAuthorUseCase(authorService author.Service, cache common.ViewCache, logger *zap.Logger) *GetAuthorUseCase {
	return &GetAuthorUseCase{authorService: authorService, cache: cache, logger: logger}
}

// Execute 根据ID查询作者，不存在返回author.ErrAuthorNotFound
func (uc *GetAuthorUseCase) Execute(ctx context.Context, id uint) (resp *AuthorResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "GetAuthor")
	span.SetAttributes(attribute.Int64("author.id", int64(id)))
	defer func() { tracing.EndSpan(span, err) }()

	return common.ReadThrough(ctx, uc.cache, uc.logger, common.AuthorKey(id), func(ctx context.Context) (*AuthorResponse, error) {
		a, err := uc.authorService.GetAuthorByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return toAuthorResponse(a), nil
	})
}
