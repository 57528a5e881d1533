package author

import (
	"context"
)

// Repository 作者仓储接口(依赖倒置原则)
// 由domain层定义接口,infrastructure层实现
type Repository interface {
	// Create 创建作者,回填ID
	// 名称违反唯一索引时返回ErrAuthorNameDuplicate
	Create(ctx context.Context, author *Author) error

	// FindByID 根据ID查找作者(含BookTitles)
	FindByID(ctx context.Context, id uint) (*Author, error)

	// FindByName 根据名称精确查找作者(不含BookTitles)
	FindByName(ctx context.Context, name string) (*Author, error)

	// List 查询全部作者(含BookTitles),按ID升序
	List(ctx context.Context) ([]*Author, error)

	// Update 更新作者名
	Update(ctx context.Context, author *Author) error

	// Delete 删除作者及其全部图书、关联记录
	// 返回被删除图书的ID,供调用方清理缓存、发布事件
	Delete(ctx context.Context, id uint) (deletedBookIDs []uint, err error)
}
