// Package memory 提供全部仓储接口的进程内实现
// 设计说明:
// 1. 与mysql实现共用domain层的Repository契约,通过storage.driver配置切换
// 2. 一把store级读写锁保证单个操作的原子性,读多写少场景用RWMutex
// 3. Transaction持有写锁执行整个闭包,锁内的仓储调用通过context标记跳过重复加锁
// 4. 所有出入参实体都做深拷贝,调用方持有的指针不会穿透到存储内部
package memory

import (
	"context"
	"sync"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/category"
	"github.com/xiebiao/bookcatalog/internal/domain/rental"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
)

// txKey 事务标记
// 与mysql.TxManager通过context传递*gorm.DB同理,
// 这里只需要一个"已持有写锁"的标记
type txKey struct{}

// assoc 图书-分类关联对
type assoc struct {
	bookID     uint
	categoryID uint
}

// Store 进程内存储
// 各实体的插入顺序由独立的顺序切片维护,map只做主键索引
type Store struct {
	mu sync.RWMutex

	books     map[uint]*book.Book
	bookOrder []uint // 图书插入顺序

	users        map[uint]*user.User
	usersByEmail map[string]uint
	nextUserID   uint

	categories       map[uint]*category.Category
	categoryOrder    []uint
	categoriesByName map[string]uint
	nextCategoryID   uint

	rentals      map[uint]*rental.Rental
	rentalOrder  []uint
	nextRentalID uint

	assocs   map[assoc]struct{} // 关联对存在性索引
	assocSeq []assoc            // 关联建立顺序
}

// NewStore 创建内存存储
func NewStore() *Store {
	return &Store{
		books:            make(map[uint]*book.Book),
		users:            make(map[uint]*user.User),
		usersByEmail:     make(map[string]uint),
		categories:       make(map[uint]*category.Category),
		categoriesByName: make(map[string]uint),
		rentals:          make(map[uint]*rental.Rental),
		assocs:           make(map[assoc]struct{}),
	}
}

// Transaction 在store级写锁内执行fn
// 提供的是隔离性而非回滚:领域服务都按"先校验后写入"组织,
// fn返回错误时尚未发生任何写入。嵌套调用直接复用外层锁。
func (s *Store) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(context.WithValue(ctx, txKey{}, true))
}

// inTx 判断当前context是否已持有写锁
func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

// InTransaction 判断当前context是否处于本存储的事务内
// txKey不导出,仓储装饰器(如redis缓存的事务内旁路)通过该函数判断
func InTransaction(ctx context.Context) bool {
	return inTx(ctx)
}

// lock 获取写锁,返回解锁函数
// 已在事务内时外层锁覆盖本次操作,返回空解锁函数
func (s *Store) lock(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// rlock 获取读锁,返回解锁函数
func (s *Store) rlock(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}
