package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// bookRepository 图书仓储实现
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误(如ISBN重复),转换为业务错误
// 4. 所有操作通过getDB(ctx)参与外层事务
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书并写入关联记录
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := &BookModel{
		Title:           b.Title,
		PublicationDate: b.PublicationDate,
		ISBN:            b.ISBN,
	}

	err := r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. 插入图书
		if err := tx.Create(model).Error; err != nil {
			if isDuplicateError(err) {
				return book.ErrISBNDuplicate
			}
			return apperrors.Wrap(err, "创建图书失败")
		}

		// 2. 插入关联
		link := &BookAuthorModel{BookID: model.ID, AuthorID: b.AuthorID}
		if err := tx.Create(link).Error; err != nil {
			return apperrors.Wrap(err, "创建图书作者关联失败")
		}
		return nil
	})
	if err != nil {
		return err
	}

	// 3. 回填自增ID
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	if err := r.getDB(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	books, err := r.withAuthors(ctx, []BookModel{model})
	if err != nil {
		return nil, err
	}
	return books[0], nil
}

// FindByISBN 根据ISBN查找图书
func (r *bookRepository) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	var model BookModel
	if err := r.getDB(ctx).Where("isbn = ?", isbn).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&model, authorLink{}), nil
}

// List 查询全部图书,按ID升序
func (r *bookRepository) List(ctx context.Context) ([]*book.Book, error) {
	var models []BookModel
	if err := r.getDB(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询图书列表失败")
	}

	return r.withAuthors(ctx, models)
}

// Update 更新书名、出版日期、ISBN
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	// 不校验RowsAffected:MySQL在值未变化时返回0
	err := r.getDB(ctx).Model(&BookModel{}).Where("id = ?", b.ID).Updates(map[string]interface{}{
		"title":            b.Title,
		"publication_date": b.PublicationDate,
		"isbn":             b.ISBN,
		"updated_at":       b.UpdatedAt,
	}).Error

	if err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "更新图书失败")
	}

	return nil
}

// Delete 删除图书及其关联记录(硬删除)
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", id).Delete(&BookAuthorModel{}).Error; err != nil {
			return apperrors.Wrap(err, "删除图书作者关联失败")
		}

		result := tx.Delete(&BookModel{}, id)
		if result.Error != nil {
			return apperrors.Wrap(result.Error, "删除图书失败")
		}
		if result.RowsAffected == 0 {
			return book.ErrBookNotFound
		}
		return nil
	})
}

// =========================================
// 辅助函数:作者投影与模型转换
// =========================================

// authorLink 图书的关联作者
type authorLink struct {
	BookID   uint
	AuthorID uint
	Name     string
}

// withAuthors 批量加载关联作者(一次查询,避免N+1)
// 每本书取author_id最小的关联作为作者
func (r *bookRepository) withAuthors(ctx context.Context, models []BookModel) ([]*book.Book, error) {
	books := make([]*book.Book, len(models))
	if len(models) == 0 {
		return books, nil
	}

	ids := make([]uint, len(models))
	for i := range models {
		ids[i] = models[i].ID
	}

	var links []authorLink
	err := r.getDB(ctx).Table("book_authors").
		Select("book_authors.book_id, book_authors.author_id, authors.name").
		Joins("JOIN authors ON authors.id = book_authors.author_id").
		Where("book_authors.book_id IN ?", ids).
		Order("book_authors.book_id ASC, book_authors.author_id ASC").
		Scan(&links).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询图书作者失败")
	}

	first := make(map[uint]authorLink, len(links))
	for _, l := range links {
		if _, ok := first[l.BookID]; !ok {
			first[l.BookID] = l
		}
	}

	for i := range models {
		books[i] = toBookEntity(&models[i], first[models[i].ID])
	}
	return books, nil
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel, link authorLink) *book.Book {
	return &book.Book{
		ID:              model.ID,
		Title:           model.Title,
		PublicationDate: book.CalendarDate(model.PublicationDate),
		ISBN:            model.ISBN,
		AuthorID:        link.AuthorID,
		AuthorName:      link.Name,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

// getDB 从context获取事务DB,如果没有则使用默认DB
func (r *bookRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}
