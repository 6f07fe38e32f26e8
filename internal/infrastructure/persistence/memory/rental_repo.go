package memory

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/rental"
)

// rentalRepository 借阅仓储的内存实现
type rentalRepository struct {
	store *Store
}

// NewRentalRepository 创建借阅仓储
func NewRentalRepository(store *Store) rental.Repository {
	return &rentalRepository{store: store}
}

// Create 创建借阅记录,ID自增分配
func (r *rentalRepository) Create(ctx context.Context, rec *rental.Rental) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	r.store.nextRentalID++
	rec.ID = r.store.nextRentalID

	r.store.rentals[rec.ID] = cloneRental(rec)
	r.store.rentalOrder = append(r.store.rentalOrder, rec.ID)
	return nil
}

// FindByID 根据ID查找借阅记录
func (r *rentalRepository) FindByID(ctx context.Context, id uint) (*rental.Rental, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	rec, exists := r.store.rentals[id]
	if !exists {
		return nil, rental.ErrRentalNotFound
	}
	return cloneRental(rec), nil
}

// FindOutstandingByBookID 查找图书的在借记录
// 业务不变量保证同一本书最多一条在借记录,找到第一条即可返回
func (r *rentalRepository) FindOutstandingByBookID(ctx context.Context, bookID uint) (*rental.Rental, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	for _, id := range r.store.rentalOrder {
		rec := r.store.rentals[id]
		if rec.BookID == bookID && rec.IsOutstanding() {
			return cloneRental(rec), nil
		}
	}
	return nil, rental.ErrRentalNotFound
}

// Update 更新借阅记录
func (r *rentalRepository) Update(ctx context.Context, rec *rental.Rental) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	old, exists := r.store.rentals[rec.ID]
	if !exists {
		return rental.ErrRentalNotFound
	}

	updated := cloneRental(rec)
	updated.CreatedAt = old.CreatedAt
	r.store.rentals[rec.ID] = updated
	return nil
}

// ListByUserID 查询借阅人的全部借阅记录,按借出顺序
func (r *rentalRepository) ListByUserID(ctx context.Context, userID uint) ([]*rental.Rental, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	result := make([]*rental.Rental, 0)
	for _, id := range r.store.rentalOrder {
		rec := r.store.rentals[id]
		if rec.UserID == userID {
			result = append(result, cloneRental(rec))
		}
	}
	return result, nil
}

// List 查询全部借阅记录,按借出顺序
func (r *rentalRepository) List(ctx context.Context) ([]*rental.Rental, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	result := make([]*rental.Rental, 0, len(r.store.rentalOrder))
	for _, id := range r.store.rentalOrder {
		result = append(result, cloneRental(r.store.rentals[id]))
	}
	return result, nil
}

// cloneRental 深拷贝借阅记录
// ReturnedAt是指针字段,需要单独复制指向的时间值
func cloneRental(rec *rental.Rental) *rental.Rental {
	c := *rec
	if rec.ReturnedAt != nil {
		t := *rec.ReturnedAt
		c.ReturnedAt = &t
	}
	return &c
}
