package rental

import (
	"context"
	"errors"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
)

// TxManager 事务管理器接口
// 借出和归还都是读改写流程,必须在事务内完成:
// - mysql实现:GORM事务+在借记录行锁,防止同一本书被并发借出两次
// - memory实现:全局写锁,检查和写入之间没有窗口
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service 借阅领域服务接口
// 设计说明:
// 1. 借出需要校验借阅人和图书都存在,属于跨聚合的业务逻辑,放在领域服务
// 2. 业务不变量:同一本书同时最多一条在借记录
type Service interface {
	// RentBook 借出图书
	// 业务规则:
	// - 借阅人和图书必须存在(否则返回对应的NotFound错误)
	// - 图书存在在借记录时返回ErrBookUnavailable
	RentBook(ctx context.Context, userID, bookID uint) (*Rental, error)

	// ReturnBook 归还图书
	// 已归还的记录重复归还是无操作,直接返回成功(幂等)
	ReturnBook(ctx context.Context, rentalID uint) (*Rental, error)

	// GetRental 根据ID获取借阅记录
	GetRental(ctx context.Context, id uint) (*Rental, error)

	// ListUserRentals 查询借阅人的借阅历史
	// 借阅人不存在时返回ErrUserNotFound
	ListUserRentals(ctx context.Context, userID uint) ([]*Rental, error)

	// ListRentals 查询全部借阅记录
	ListRentals(ctx context.Context) ([]*Rental, error)
}

// service 领域服务实现
type service struct {
	repo     Repository
	userRepo user.Repository
	bookRepo book.Repository
	tx       TxManager
}

// NewService 创建借阅领域服务
func NewService(repo Repository, userRepo user.Repository, bookRepo book.Repository, tx TxManager) Service {
	return &service{
		repo:     repo,
		userRepo: userRepo,
		bookRepo: bookRepo,
		tx:       tx,
	}
}

// RentBook 借出图书
func (s *service) RentBook(ctx context.Context, userID, bookID uint) (*Rental, error) {
	var created *Rental

	// 检查和写入必须在同一事务内,否则并发请求可能同时通过在借检查
	err := s.tx.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 校验借阅人存在
		if _, err := s.userRepo.FindByID(txCtx, userID); err != nil {
			return err
		}

		// 2. 校验图书存在
		if _, err := s.bookRepo.FindByID(txCtx, bookID); err != nil {
			return err
		}

		// 3. 校验图书当前无在借记录
		// errors.Is兼容被装饰器包装过的仓储错误
		if _, err := s.repo.FindOutstandingByBookID(txCtx, bookID); err == nil {
			return ErrBookUnavailable
		} else if !errors.Is(err, ErrRentalNotFound) {
			return err
		}

		// 4. 创建借阅记录
		r := NewRental(userID, bookID)
		if err := s.repo.Create(txCtx, r); err != nil {
			return err
		}

		created = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// ReturnBook 归还图书
func (s *service) ReturnBook(ctx context.Context, rentalID uint) (*Rental, error) {
	var returned *Rental

	err := s.tx.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 查找借阅记录
		r, err := s.repo.FindByID(txCtx, rentalID)
		if err != nil {
			return err
		}

		// 2. 归还;已归还时MarkReturned返回false,跳过落库(幂等)
		if r.MarkReturned() {
			if err := s.repo.Update(txCtx, r); err != nil {
				return err
			}
		}

		returned = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	return returned, nil
}

// GetRental 根据ID获取借阅记录
func (s *service) GetRental(ctx context.Context, id uint) (*Rental, error) {
	return s.repo.FindByID(ctx, id)
}

// ListUserRentals 查询借阅人的借阅历史
func (s *service) ListUserRentals(ctx context.Context, userID uint) ([]*Rental, error) {
	// 先校验借阅人存在,区分"无记录"和"人不存在"
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByUserID(ctx, userID)
}

// ListRentals 查询全部借阅记录
func (s *service) ListRentals(ctx context.Context) ([]*Rental, error) {
	return s.repo.List(ctx)
}
