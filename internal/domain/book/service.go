package book

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/xiebiao/bookshelf/internal/domain/author"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装跨实体的业务逻辑和业务规则校验
// 2. 需要按名称查作者,所以同时依赖author.Repository
type Service interface {
	// CreateBook 创建图书
	// 业务规则:
	// - 字段校验见ValidateFields,作者名不能为空白
	// - ISBN不能重复
	// - 作者必须已存在
	CreateBook(ctx context.Context, params CreateParams) (*Book, error)

	// GetBookByID 根据ID获取图书
	GetBookByID(ctx context.Context, id uint) (*Book, error)

	// ListBooks 查询全部图书
	ListBooks(ctx context.Context) ([]*Book, error)

	// UpdateBook 更新图书
	// 业务规则:
	// - 图书必须存在
	// - 字段校验同CreateBook
	// - ISBN不能与其他图书冲突
	// - 请求中的作者名必须与当前作者一致(作者不可修改)
	UpdateBook(ctx context.Context, id uint, params UpdateParams) (*Book, error)

	// DeleteBook 删除图书,返回删除前的图书
	DeleteBook(ctx context.Context, id uint) (*Book, error)
}

// CreateParams 创建参数
type CreateParams struct {
	Title           string
	PublicationDate time.Time
	ISBN            string
	AuthorName      string
}

// UpdateParams 更新参数(与创建参数字段一致)
type UpdateParams CreateParams

// service 领域服务实现
type service struct {
	repo    Repository
	authors author.Repository
	now     func() time.Time
}

// NewService 创建图书领域服务
func NewService(repo Repository, authors author.Repository) Service {
	return &service{
		repo:    repo,
		authors: authors,
		now:     time.Now,
	}
}

// CreateBook 创建图书
func (s *service) CreateBook(ctx context.Context, p CreateParams) (*Book, error) {
	// 1. 字段校验
	if err := s.validate(p.Title, p.PublicationDate, p.ISBN, p.AuthorName); err != nil {
		return nil, err
	}

	// 2. ISBN唯一性检查
	if err := s.ensureISBNAvailable(ctx, p.ISBN, 0); err != nil {
		return nil, err
	}

	// 3. 作者必须已存在
	a, err := s.authors.FindByName(ctx, p.AuthorName)
	if err != nil {
		if errors.Is(err, author.ErrAuthorNotFound) {
			return nil, ErrUnknownAuthor
		}
		return nil, err
	}

	// 4. 持久化(图书 + 关联)
	b := NewBook(p.Title, p.PublicationDate, p.ISBN, a.ID, a.Name)
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// GetBookByID 根据ID获取图书
func (s *service) GetBookByID(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// ListBooks 查询全部图书
func (s *service) ListBooks(ctx context.Context) ([]*Book, error) {
	return s.repo.List(ctx)
}

// UpdateBook 更新图书
func (s *service) UpdateBook(ctx context.Context, id uint, p UpdateParams) (*Book, error) {
	// 1. 查询图书
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. 字段校验
	if err := s.validate(p.Title, p.PublicationDate, p.ISBN, p.AuthorName); err != nil {
		return nil, err
	}

	// 3. ISBN不能与其他图书冲突
	if err := s.ensureISBNAvailable(ctx, p.ISBN, b.ID); err != nil {
		return nil, err
	}

	// 4. 作者不可修改
	if !b.IsWrittenBy(p.AuthorName) {
		return nil, ErrAuthorImmutable
	}

	// 5. 更新并持久化
	b.UpdateInfo(p.Title, p.PublicationDate, p.ISBN)
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// DeleteBook 删除图书
func (s *service) DeleteBook(ctx context.Context, id uint) (*Book, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	return b, nil
}

// =========================================
// 辅助函数:业务规则校验
// =========================================

func (s *service) validate(title string, publicationDate time.Time, isbn, authorName string) error {
	if err := ValidateFields(title, publicationDate, isbn, s.now()); err != nil {
		return err
	}
	if strings.TrimSpace(authorName) == "" {
		return ErrAuthorNameRequired
	}
	return nil
}

// ensureISBNAvailable 检查ISBN是否被selfID以外的图书占用
func (s *service) ensureISBNAvailable(ctx context.Context, isbn string, selfID uint) error {
	existing, err := s.repo.FindByISBN(ctx, isbn)
	if err != nil {
		if errors.Is(err, ErrBookNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return ErrISBNDuplicate
	}
	return nil
}
