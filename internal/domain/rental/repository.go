package rental

import (
	"context"
)

// Repository 借阅仓储接口(依赖倒置原则)
// 教学要点:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 支持事务操作(通过context传递事务)
type Repository interface {
	// Create 创建借阅记录(ID由存储层分配)
	Create(ctx context.Context, rental *Rental) error

	// FindByID 根据ID查找借阅记录
	// 不存在时返回ErrRentalNotFound
	FindByID(ctx context.Context, id uint) (*Rental, error)

	// FindOutstandingByBookID 查找图书的在借记录
	// 没有在借记录时返回ErrRentalNotFound
	// mysql实现在事务内带行锁查询,防止并发重复借出
	FindOutstandingByBookID(ctx context.Context, bookID uint) (*Rental, error)

	// Update 更新借阅记录(主要用于归还)
	Update(ctx context.Context, rental *Rental) error

	// ListByUserID 查询借阅人的全部借阅记录(含已归还),按借出顺序
	ListByUserID(ctx context.Context, userID uint) ([]*Rental, error)

	// List 查询全部借阅记录,按借出顺序
	List(ctx context.Context) ([]*Rental, error)
}
