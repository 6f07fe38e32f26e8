package category

import (
	"time"
)

// Category 图书分类实体(聚合根)
// 设计说明:
// 1. 分类与图书是多对多关系,关联关系由仓储维护(book_category关联表/内存集合)
// 2. 分类名全局唯一
type Category struct {
	ID        uint
	Name      string // 分类名
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCategory 创建分类(工厂方法)
func NewCategory(name string) *Category {
	now := time.Now()
	return &Category{
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate 校验分类字段
func (c *Category) Validate() error {
	if c.Name == "" {
		return ErrEmptyName
	}
	return nil
}
