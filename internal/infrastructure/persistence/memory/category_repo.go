package memory

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/category"
)

// categoryRepository 分类仓储的内存实现
// 关联对集合对应mysql的book_category关联表
type categoryRepository struct {
	store *Store
}

// NewCategoryRepository 创建分类仓储
func NewCategoryRepository(store *Store) category.Repository {
	return &categoryRepository{store: store}
}

// Create 创建分类,ID自增分配
func (r *categoryRepository) Create(ctx context.Context, c *category.Category) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	if _, exists := r.store.categoriesByName[c.Name]; exists {
		return category.ErrCategoryDuplicate
	}

	r.store.nextCategoryID++
	c.ID = r.store.nextCategoryID

	r.store.categories[c.ID] = cloneCategory(c)
	r.store.categoryOrder = append(r.store.categoryOrder, c.ID)
	r.store.categoriesByName[c.Name] = c.ID
	return nil
}

// FindByID 根据ID查找分类
func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*category.Category, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	c, exists := r.store.categories[id]
	if !exists {
		return nil, category.ErrCategoryNotFound
	}
	return cloneCategory(c), nil
}

// List 查询全部分类,按创建顺序
func (r *categoryRepository) List(ctx context.Context) ([]*category.Category, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	result := make([]*category.Category, 0, len(r.store.categoryOrder))
	for _, id := range r.store.categoryOrder {
		result = append(result, cloneCategory(r.store.categories[id]))
	}
	return result, nil
}

// Assign 建立图书-分类关联,已存在时无操作
func (r *categoryRepository) Assign(ctx context.Context, bookID, categoryID uint) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	key := assoc{bookID: bookID, categoryID: categoryID}
	if _, exists := r.store.assocs[key]; exists {
		return nil
	}

	r.store.assocs[key] = struct{}{}
	r.store.assocSeq = append(r.store.assocSeq, key)
	return nil
}

// Unassign 解除图书-分类关联,不存在时无操作
func (r *categoryRepository) Unassign(ctx context.Context, bookID, categoryID uint) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	key := assoc{bookID: bookID, categoryID: categoryID}
	if _, exists := r.store.assocs[key]; !exists {
		return nil
	}

	delete(r.store.assocs, key)
	for i, a := range r.store.assocSeq {
		if a == key {
			r.store.assocSeq = append(r.store.assocSeq[:i], r.store.assocSeq[i+1:]...)
			break
		}
	}
	return nil
}

// ListByBookID 查询图书所属的分类,按关联建立顺序
func (r *categoryRepository) ListByBookID(ctx context.Context, bookID uint) ([]*category.Category, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	result := make([]*category.Category, 0)
	for _, a := range r.store.assocSeq {
		if a.bookID != bookID {
			continue
		}
		if c, exists := r.store.categories[a.categoryID]; exists {
			result = append(result, cloneCategory(c))
		}
	}
	return result, nil
}

// cloneCategory 深拷贝分类实体
func cloneCategory(c *category.Category) *category.Category {
	cp := *c
	return &cp
}
