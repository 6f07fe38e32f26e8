package book

import (
	"context"
)

// TxManager 事务管理器接口
// 由调用方(本服务)定义,infrastructure层实现:
// - mysql.TxManager: GORM事务,fn内通过context拿到tx
// - memory.Store: 全局写锁,fn内的仓储操作不再重复加锁
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装业务规则校验(出版年份、排序白名单)和读改写的原子性
// 2. 不依赖具体的Repository实现(依赖倒置)
type Service interface {
	// CreateBook 登记图书
	// 业务规则:
	// - ID由调用方指定,不能与已有图书重复
	// - 出版年份不能晚于当前年份
	CreateBook(ctx context.Context, id uint, title, author, description string, publishedYear int) (*Book, error)

	// GetBook 根据ID获取图书详情
	GetBook(ctx context.Context, id uint) (*Book, error)

	// ListBooks 按插入顺序返回全部图书
	ListBooks(ctx context.Context) ([]*Book, error)

	// SearchBooks 精确匹配检索
	// 所有条件之间是AND关系;一个条件都不给时等价于ListBooks
	SearchBooks(ctx context.Context, filter Filter) ([]*Book, error)

	// SortBooks 按指定字段排序返回全部图书
	// field必须在{title, author, published_year}内,order必须是asc或desc,
	// 否则返回参数错误;排序稳定,相等元素按插入顺序
	SortBooks(ctx context.Context, field, order string) ([]*Book, error)

	// UpdateBook 全量替换图书信息(PUT语义),替换前重新校验
	UpdateBook(ctx context.Context, id uint, title, author, description string, publishedYear int) (*Book, error)

	// PatchBook 部分更新(PATCH语义)
	// 合并到副本后整体重新校验,校验失败时原记录保持不变
	PatchBook(ctx context.Context, id uint, patch Patch) (*Book, error)

	// DeleteBook 删除图书
	DeleteBook(ctx context.Context, id uint) error
}

// service 领域服务实现
type service struct {
	repo Repository
	tx   TxManager
}

// NewService 创建图书领域服务
func NewService(repo Repository, tx TxManager) Service {
	return &service{repo: repo, tx: tx}
}

// CreateBook 登记图书
func (s *service) CreateBook(ctx context.Context, id uint, title, author, description string, publishedYear int) (*Book, error) {
	// 1. 构造实体并校验
	b := NewBook(id, title, author, description, publishedYear)
	if err := b.Validate(); err != nil {
		return nil, err
	}

	// 2. 持久化(ID重复由Repository返回ErrDuplicateID)
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// GetBook 根据ID获取图书
func (s *service) GetBook(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// ListBooks 按插入顺序返回全部图书
func (s *service) ListBooks(ctx context.Context) ([]*Book, error) {
	return s.repo.List(ctx, ListParams{})
}

// Filter 检索条件(nil表示不限制)
type Filter struct {
	Title         *string
	Author        *string
	PublishedYear *int
}

// SearchBooks 精确匹配检索
func (s *service) SearchBooks(ctx context.Context, filter Filter) ([]*Book, error) {
	return s.repo.List(ctx, ListParams{
		Title:         filter.Title,
		Author:        filter.Author,
		PublishedYear: filter.PublishedYear,
	})
}

// SortBooks 排序查询
func (s *service) SortBooks(ctx context.Context, field, order string) ([]*Book, error) {
	// 1. 排序字段白名单校验
	switch field {
	case SortFieldTitle, SortFieldAuthor, SortFieldPublishedYear:
	default:
		return nil, ErrInvalidSortField
	}

	// 2. 排序方向校验(非法值直接拒绝,不做静默回退)
	switch order {
	case SortOrderAsc, SortOrderDesc:
	default:
		return nil, ErrInvalidSortOrder
	}

	return s.repo.List(ctx, ListParams{SortField: field, SortOrder: order})
}

// UpdateBook 全量替换
func (s *service) UpdateBook(ctx context.Context, id uint, title, author, description string, publishedYear int) (*Book, error) {
	var updated *Book

	// 读改写放在事务内,避免并发更新互相覆盖
	err := s.tx.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 查询图书
		b, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return err
		}

		// 2. 整体覆盖并重新校验
		b.UpdateInfo(title, author, description, publishedYear)
		if err := b.Validate(); err != nil {
			return err
		}

		// 3. 持久化
		if err := s.repo.Update(txCtx, b); err != nil {
			return err
		}

		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// PatchBook 部分更新
func (s *service) PatchBook(ctx context.Context, id uint, patch Patch) (*Book, error) {
	if patch.IsEmpty() {
		return nil, ErrEmptyPatch
	}

	var updated *Book

	err := s.tx.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 查询图书
		b, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return err
		}

		// 2. 合并到副本,整体重新校验
		// 校验失败时不落库,原记录保持不变(全有或全无)
		merged := patch.ApplyTo(b)
		if err := merged.Validate(); err != nil {
			return err
		}

		// 3. 持久化
		if err := s.repo.Update(txCtx, merged); err != nil {
			return err
		}

		updated = merged
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteBook 删除图书
func (s *service) DeleteBook(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
