package mysql

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误(如主键重复),转换为业务错误
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
// ID由调用方指定,主键冲突转换为ErrDuplicateID
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	// 1. 领域实体 → GORM模型
	model := &BookModel{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		Description:   b.Description,
		PublishedYear: b.PublishedYear,
	}

	// 2. 插入数据库
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrDuplicateID
		}
		return apperrors.Wrap(err, "创建图书失败")
	}

	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := r.getDB(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// Update 更新图书信息(整体覆盖)
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	// Updates+Select强制写入零值字段(PUT语义:空字符串也要覆盖)
	result := r.getDB(ctx).Model(&BookModel{}).
		Where("id = ?", b.ID).
		Select("title", "author", "description", "published_year").
		Updates(map[string]interface{}{
			"title":          b.Title,
			"author":         b.Author,
			"description":    b.Description,
			"published_year": b.PublishedYear,
		})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新图书失败")
	}

	if result.RowsAffected == 0 {
		// RowsAffected为0可能是记录不存在,也可能是内容没变,查一次区分
		var model BookModel
		if err := r.getDB(ctx).First(&model, b.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return book.ErrBookNotFound
			}
			return apperrors.Wrap(err, "查询图书失败")
		}
	}

	return nil
}

// Delete 删除图书
// 分类关联一并删除:编号可以复用,
// 残留的关联行会挂到复用同一编号的新书上
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&BookModel{}, id)
		if result.Error != nil {
			return apperrors.Wrap(result.Error, "删除图书失败")
		}
		if result.RowsAffected == 0 {
			return book.ErrBookNotFound
		}

		if err := tx.Where("book_id = ?", id).Delete(&BookCategoryModel{}).Error; err != nil {
			return apperrors.Wrap(err, "清理图书分类关联失败")
		}
		return nil
	})
}

// List 查询图书列表
// 无排序时按插入序列(seq)升序;有排序时以seq做第二排序键,
// 保证相等元素按插入顺序(与内存实现的稳定排序一致)
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, error) {
	var models []BookModel

	query := r.getDB(ctx).Model(&BookModel{})

	// 精确匹配过滤,nil条件不限制
	if params.Title != nil {
		query = query.Where("title = ?", *params.Title)
	}
	if params.Author != nil {
		query = query.Where("author = ?", *params.Author)
	}
	if params.PublishedYear != nil {
		query = query.Where("published_year = ?", *params.PublishedYear)
	}

	// 排序字段经过domain层白名单校验,这里只做字段名到列名的映射
	if params.SortField != "" {
		column, ok := sortColumns[params.SortField]
		if !ok {
			return nil, book.ErrInvalidSortField
		}
		direction := "ASC"
		if params.SortOrder == book.SortOrderDesc {
			direction = "DESC"
		}
		query = query.Order(fmt.Sprintf("%s %s, seq ASC", column, direction))
	} else {
		query = query.Order("seq ASC")
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询图书列表失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}

	return books, nil
}

// sortColumns 排序字段到列名的映射
// 与domain层白名单一一对应,字段名不直接进SQL
var sortColumns = map[string]string{
	book.SortFieldTitle:         "title",
	book.SortFieldAuthor:        "author",
	book.SortFieldPublishedYear: "published_year",
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:            model.ID,
		Title:         model.Title,
		Author:        model.Author,
		Description:   model.Description,
		PublishedYear: model.PublishedYear,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

// getDB 从context获取事务DB,如果没有则使用默认DB
// 教学要点:事务传递机制
func (r *bookRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}
