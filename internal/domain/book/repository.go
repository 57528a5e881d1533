package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
type Repository interface {
	// Create 创建图书并写入book_authors关联(同一事务)
	// ISBN违反唯一索引时返回ErrISBNDuplicate
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书(含AuthorName)
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByISBN 根据ISBN查找图书
	FindByISBN(ctx context.Context, isbn string) (*Book, error)

	// List 查询全部图书(含AuthorName),按ID升序
	List(ctx context.Context) ([]*Book, error)

	// Update 更新书名、出版日期、ISBN
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书及其关联记录
	Delete(ctx context.Context, id uint) error
}
