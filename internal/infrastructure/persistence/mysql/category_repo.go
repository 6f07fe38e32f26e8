package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/category"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// categoryRepository 分类仓储实现(MySQL)
// 设计说明:
// 1. 分类名唯一性由UNIQUE索引保证
// 2. 图书-分类关联存在book_categories表,复合主键(book_id, category_id)
// 3. Assign的幂等性靠吞掉主键冲突实现(INSERT重复对时返回1062)
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓储
func NewCategoryRepository(db *gorm.DB) category.Repository {
	return &categoryRepository{db: db}
}

// Create 创建分类
func (r *categoryRepository) Create(ctx context.Context, c *category.Category) error {
	model := &CategoryModel{
		Name: c.Name,
	}

	if err := r.getDB(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return category.ErrCategoryDuplicate
		}
		return apperrors.Wrap(err, "创建分类失败")
	}

	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找分类
func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*category.Category, error) {
	var model CategoryModel
	err := r.getDB(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(err, "查询分类失败")
	}

	return toCategoryEntity(&model), nil
}

// List 查询全部分类,按创建顺序
func (r *categoryRepository) List(ctx context.Context) ([]*category.Category, error) {
	var models []CategoryModel

	err := r.getDB(ctx).Order("id ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询分类列表失败")
	}

	categories := make([]*category.Category, len(models))
	for i := range models {
		categories[i] = toCategoryEntity(&models[i])
	}

	return categories, nil
}

// Assign 建立图书-分类关联
// 重复关联触发复合主键冲突,视为成功(幂等)
func (r *categoryRepository) Assign(ctx context.Context, bookID, categoryID uint) error {
	model := &BookCategoryModel{
		BookID:     bookID,
		CategoryID: categoryID,
	}

	if err := r.getDB(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return nil
		}
		return apperrors.Wrap(err, "关联分类失败")
	}

	return nil
}

// Unassign 解除图书-分类关联
// 关联不存在时RowsAffected为0,同样视为成功
func (r *categoryRepository) Unassign(ctx context.Context, bookID, categoryID uint) error {
	result := r.getDB(ctx).
		Where("book_id = ? AND category_id = ?", bookID, categoryID).
		Delete(&BookCategoryModel{})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "解除分类关联失败")
	}

	return nil
}

// ListByBookID 查询图书所属的分类,按关联建立顺序
// JOIN关联表,用关联表的自增序列排序
func (r *categoryRepository) ListByBookID(ctx context.Context, bookID uint) ([]*category.Category, error) {
	var models []CategoryModel

	err := r.getDB(ctx).
		Joins("JOIN book_categories ON book_categories.category_id = categories.id").
		Where("book_categories.book_id = ?", bookID).
		Order("book_categories.id ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询图书分类失败")
	}

	categories := make([]*category.Category, len(models))
	for i := range models {
		categories[i] = toCategoryEntity(&models[i])
	}

	return categories, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toCategoryEntity GORM模型 → 领域实体
func toCategoryEntity(model *CategoryModel) *category.Category {
	return &category.Category{
		ID:        model.ID,
		Name:      model.Name,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// getDB 从context获取事务DB,如果没有则使用默认DB
func (r *categoryRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}
