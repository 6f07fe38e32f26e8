package book

import (
	"context"
)

// 排序白名单
// 设计说明:排序字段来自HTTP查询参数,必须经过白名单校验后才能进入
// Repository(mysql实现会把字段名拼进ORDER BY,白名单同时是SQL注入防线)
const (
	SortFieldTitle         = "title"
	SortFieldAuthor        = "author"
	SortFieldPublishedYear = "published_year"

	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 内存实现(memory)和持久化实现(mysql)共用同一契约
// 3. 返回的实体都是副本,调用方修改不会影响仓储内部状态
type Repository interface {
	// Create 创建图书
	// ID已被占用时返回ErrDuplicateID
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	// 不存在时返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// Update 更新图书信息(按ID整体覆盖)
	// 不存在时返回ErrBookNotFound
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书
	// 不存在时返回ErrBookNotFound
	Delete(ctx context.Context, id uint) error

	// List 查询图书列表
	// 无排序时按插入顺序返回;有排序时相等元素保持插入顺序(稳定排序)
	List(ctx context.Context, params ListParams) ([]*Book, error)
}

// ListParams 列表查询参数
// 过滤条件为指针:nil表示不施加该条件,多条件之间是AND关系,全部精确匹配
type ListParams struct {
	Title         *string // 书名精确匹配
	Author        *string // 作者精确匹配
	PublishedYear *int    // 出版年份精确匹配

	SortField string // 排序字段(空串表示不排序,按插入顺序)
	SortOrder string // 排序方向(asc/desc)
}

// HasFilter 判断是否带有过滤条件
func (p ListParams) HasFilter() bool {
	return p.Title != nil || p.Author != nil || p.PublishedYear != nil
}
