package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshelf/internal/domain/author"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// authorRepository 作者仓储实现
type authorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository 创建作者仓储
func NewAuthorRepository(db *gorm.DB) author.Repository {
	return &authorRepository{db: db}
}

// Create 创建作者
// 名称唯一性最终由authors.name唯一索引保证
func (r *authorRepository) Create(ctx context.Context, a *author.Author) error {
	model := &AuthorModel{Name: a.Name}

	if err := r.getDB(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return author.ErrAuthorNameDuplicate
		}
		return apperrors.Wrap(err, "创建作者失败")
	}

	a.ID = model.ID
	a.CreatedAt = model.CreatedAt
	a.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找作者(含书名)
func (r *authorRepository) FindByID(ctx context.Context, id uint) (*author.Author, error) {
	var model AuthorModel
	if err := r.getDB(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, apperrors.Wrap(err, "查询作者失败")
	}

	authors, err := r.withTitles(ctx, []AuthorModel{model})
	if err != nil {
		return nil, err
	}
	return authors[0], nil
}

// FindByName 根据名称精确查找作者(区分大小写)
// 已存在的表可能使用大小写不敏感的排序规则，查询结果再按字节比较一次
func (r *authorRepository) FindByName(ctx context.Context, name string) (*author.Author, error) {
	var model AuthorModel
	if err := r.getDB(ctx).Where("name = ?", name).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, apperrors.Wrap(err, "查询作者失败")
	}
	if model.Name != name {
		return nil, author.ErrAuthorNotFound
	}

	return toAuthorEntity(&model, nil), nil
}

// List 查询全部作者,按ID升序
func (r *authorRepository) List(ctx context.Context) ([]*author.Author, error) {
	var models []AuthorModel
	if err := r.getDB(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询作者列表失败")
	}

	return r.withTitles(ctx, models)
}

// Update 更新作者名
func (r *authorRepository) Update(ctx context.Context, a *author.Author) error {
	err := r.getDB(ctx).Model(&AuthorModel{}).Where("id = ?", a.ID).Updates(map[string]interface{}{
		"name":       a.Name,
		"updated_at": a.UpdatedAt,
	}).Error

	if err != nil {
		if isDuplicateError(err) {
			return author.ErrAuthorNameDuplicate
		}
		return apperrors.Wrap(err, "更新作者失败")
	}
	return nil
}

// Delete 删除作者,并级联删除其全部图书和关联记录
// 顺序:查出图书ID → 删除这些图书的全部关联 → 删除图书 → 删除作者
func (r *authorRepository) Delete(ctx context.Context, id uint) ([]uint, error) {
	var bookIDs []uint

	err := r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&BookAuthorModel{}).
			Where("author_id = ?", id).
			Order("book_id ASC").
			Pluck("book_id", &bookIDs).Error; err != nil {
			return apperrors.Wrap(err, "查询作者图书失败")
		}

		if len(bookIDs) > 0 {
			if err := tx.Where("book_id IN ?", bookIDs).Delete(&BookAuthorModel{}).Error; err != nil {
				return apperrors.Wrap(err, "删除图书作者关联失败")
			}
			if err := tx.Where("id IN ?", bookIDs).Delete(&BookModel{}).Error; err != nil {
				return apperrors.Wrap(err, "删除作者图书失败")
			}
		}

		result := tx.Delete(&AuthorModel{}, id)
		if result.Error != nil {
			return apperrors.Wrap(result.Error, "删除作者失败")
		}
		if result.RowsAffected == 0 {
			return author.ErrAuthorNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return bookIDs, nil
}

// =========================================
// 辅助函数
// =========================================

type authorTitle struct {
	AuthorID uint
	Title    string
}

// withTitles 批量加载作者的书名,按图书ID升序
func (r *authorRepository) withTitles(ctx context.Context, models []AuthorModel) ([]*author.Author, error) {
	authors := make([]*author.Author, len(models))
	if len(models) == 0 {
		return authors, nil
	}

	ids := make([]uint, len(models))
	for i := range models {
		ids[i] = models[i].ID
	}

	var rows []authorTitle
	err := r.getDB(ctx).Table("book_authors").
		Select("book_authors.author_id, books.title").
		Joins("JOIN books ON books.id = book_authors.book_id").
		Where("book_authors.author_id IN ?", ids).
		Order("book_authors.book_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询作者图书失败")
	}

	titles := make(map[uint][]string, len(models))
	for _, row := range rows {
		titles[row.AuthorID] = append(titles[row.AuthorID], row.Title)
	}

	for i := range models {
		authors[i] = toAuthorEntity(&models[i], titles[models[i].ID])
	}
	return authors, nil
}

// toAuthorEntity GORM模型 → 领域实体
// BookTitles总是非nil,便于序列化为[]
func toAuthorEntity(model *AuthorModel, titles []string) *author.Author {
	if titles == nil {
		titles = []string{}
	}
	return &author.Author{
		ID:         model.ID,
		Name:       model.Name,
		BookTitles: titles,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

func (r *authorRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}
