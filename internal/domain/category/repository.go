package category

import (
	"context"
)

// Repository 分类仓储接口(依赖倒置原则)
// 除分类本身的CRUD外,还负责维护(book_id, category_id)关联对集合
type Repository interface {
	// Create 创建分类(ID由存储层分配)
	// 分类名已存在时返回ErrCategoryDuplicate
	Create(ctx context.Context, category *Category) error

	// FindByID 根据ID查找分类
	// 不存在时返回ErrCategoryNotFound
	FindByID(ctx context.Context, id uint) (*Category, error)

	// List 查询全部分类,按创建顺序
	List(ctx context.Context) ([]*Category, error)

	// Assign 把图书加入分类
	// 关联已存在时是无操作,不报错(幂等)
	Assign(ctx context.Context, bookID, categoryID uint) error

	// Unassign 把图书移出分类
	// 关联不存在时是无操作,不报错
	Unassign(ctx context.Context, bookID, categoryID uint) error

	// ListByBookID 查询图书所属的分类,按关联建立顺序
	ListByBookID(ctx context.Context, bookID uint) ([]*Category, error)
}
