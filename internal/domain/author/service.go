package author

import (
	"context"
	"errors"
)

// Service 作者领域服务接口
// 业务规则:
// - 作者名不能为空白
// - 作者名全局唯一
// - 删除作者时级联删除其全部图书
type Service interface {
	// CreateAuthor 创建作者
	CreateAuthor(ctx context.Context, name string) (*Author, error)

	// GetAuthorByID 根据ID获取作者(含书名列表)
	GetAuthorByID(ctx context.Context, id uint) (*Author, error)

	// GetAuthorByName 根据名称获取作者
	GetAuthorByName(ctx context.Context, name string) (*Author, error)

	// ListAuthors 查询全部作者
	ListAuthors(ctx context.Context) ([]*Author, error)

	// UpdateAuthor 修改作者名
	UpdateAuthor(ctx context.Context, id uint, name string) (*Author, error)

	// DeleteAuthor 删除作者,返回被级联删除的图书ID
	DeleteAuthor(ctx context.Context, id uint) ([]uint, error)
}

type service struct {
	repo Repository
}

// NewService 创建作者领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateAuthor 创建作者
func (s *service) CreateAuthor(ctx context.Context, name string) (*Author, error) {
	// 1. 名称校验
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	// 2. 唯一性检查(并发下由唯一索引兜底)
	if err := s.ensureNameAvailable(ctx, name, 0); err != nil {
		return nil, err
	}

	// 3. 持久化
	a := NewAuthor(name)
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

// GetAuthorByID 根据ID获取作者
func (s *service) GetAuthorByID(ctx context.Context, id uint) (*Author, error) {
	return s.repo.FindByID(ctx, id)
}

// GetAuthorByName 根据名称获取作者
func (s *service) GetAuthorByName(ctx context.Context, name string) (*Author, error) {
	return s.repo.FindByName(ctx, name)
}

// ListAuthors 查询全部作者
func (s *service) ListAuthors(ctx context.Context) ([]*Author, error) {
	return s.repo.List(ctx)
}

// UpdateAuthor 修改作者名
func (s *service) UpdateAuthor(ctx context.Context, id uint, name string) (*Author, error) {
	// 1. 作者必须存在
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. 名称校验并修改
	if err := a.Rename(name); err != nil {
		return nil, err
	}

	// 3. 不能与其他作者重名(与自己同名允许)
	if err := s.ensureNameAvailable(ctx, name, id); err != nil {
		return nil, err
	}

	// 4. 持久化
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

// DeleteAuthor 删除作者
func (s *service) DeleteAuthor(ctx context.Context, id uint) ([]uint, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.Delete(ctx, id)
}

// ensureNameAvailable 检查名称是否被selfID以外的作者占用
func (s *service) ensureNameAvailable(ctx context.Context, name string, selfID uint) error {
	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, ErrAuthorNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return ErrAuthorNameDuplicate
	}
	return nil
}
