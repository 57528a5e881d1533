package author

import (
	"strings"
	"time"
)

// Author 作者实体(聚合根)
// 设计说明:
// 1. Name全局唯一(数据库唯一索引 + 领域服务检查)
// 2. BookTitles是查询投影,只在FindByID/List时填充,写操作不使用
type Author struct {
	ID         uint
	Name       string   // 作者名
	BookTitles []string // 关联图书的书名(按图书ID升序)
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewAuthor 创建新作者(工厂方法)
func NewAuthor(name string) *Author {
	now := time.Now()
	return &Author{
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Rename 修改作者名(领域行为)
func (a *Author) Rename(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	a.Name = name
	a.UpdatedAt = time.Now()
	return nil
}

// ValidateName 作者名不能为空白
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	return nil
}
