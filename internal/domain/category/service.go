package category

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// TxManager 事务管理器接口
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service 分类领域服务接口
// 设计说明:关联操作需要校验图书和分类都存在,属于跨聚合逻辑,放在领域服务
type Service interface {
	// CreateCategory 创建分类
	CreateCategory(ctx context.Context, name string) (*Category, error)

	// ListCategories 查询全部分类
	ListCategories(ctx context.Context) ([]*Category, error)

	// AssignToBook 把图书加入分类
	// 业务规则:
	// - 图书和分类必须存在(否则返回对应的NotFound错误)
	// - 重复加入是无操作,直接返回成功(幂等)
	AssignToBook(ctx context.Context, bookID, categoryID uint) error

	// RemoveFromBook 把图书移出分类
	// 未关联时是无操作,直接返回成功
	RemoveFromBook(ctx context.Context, bookID, categoryID uint) error

	// ListBookCategories 查询图书所属的分类
	// 图书不存在时返回ErrBookNotFound
	ListBookCategories(ctx context.Context, bookID uint) ([]*Category, error)
}

// service 领域服务实现
type service struct {
	repo     Repository
	bookRepo book.Repository
	tx       TxManager
}

// NewService 创建分类领域服务
func NewService(repo Repository, bookRepo book.Repository, tx TxManager) Service {
	return &service{repo: repo, bookRepo: bookRepo, tx: tx}
}

// CreateCategory 创建分类
func (s *service) CreateCategory(ctx context.Context, name string) (*Category, error) {
	c := NewCategory(name)
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// ListCategories 查询全部分类
func (s *service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.repo.List(ctx)
}

// AssignToBook 把图书加入分类
func (s *service) AssignToBook(ctx context.Context, bookID, categoryID uint) error {
	return s.tx.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 校验图书存在
		if _, err := s.bookRepo.FindByID(txCtx, bookID); err != nil {
			return err
		}

		// 2. 校验分类存在
		if _, err := s.repo.FindByID(txCtx, categoryID); err != nil {
			return err
		}

		// 3. 建立关联(重复关联由仓储吞掉,幂等)
		return s.repo.Assign(txCtx, bookID, categoryID)
	})
}

// RemoveFromBook 把图书移出分类
func (s *service) RemoveFromBook(ctx context.Context, bookID, categoryID uint) error {
	return s.tx.Transaction(ctx, func(txCtx context.Context) error {
		if _, err := s.bookRepo.FindByID(txCtx, bookID); err != nil {
			return err
		}
		if _, err := s.repo.FindByID(txCtx, categoryID); err != nil {
			return err
		}
		return s.repo.Unassign(txCtx, bookID, categoryID)
	})
}

// ListBookCategories 查询图书所属的分类
func (s *service) ListBookCategories(ctx context.Context, bookID uint) ([]*Category, error) {
	if _, err := s.bookRepo.FindByID(ctx, bookID); err != nil {
		return nil, err
	}
	return s.repo.ListByBookID(ctx, bookID)
}
