package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/bookcatalog/pkg/circuitbreaker"
)

// BookCache 图书详情缓存
//
// 教学要点：
// 1. 缓存策略：Cache-Aside（旁路缓存）
//    先查缓存，未命中再查数据库，查到后回填缓存
// 2. 缓存一致性：更新/删除图书时删除缓存，而不是更新缓存
//    （并发更新缓存可能写入旧值，删除让下次查询重新加载）
// 3. 只缓存按ID的详情查询。列表和检索查询组合多、命中率低，
//    而且插入顺序语义下任何写操作都会使其失效，不缓存
type BookCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBookCache 创建图书缓存
func NewBookCache(client *redis.Client, ttl time.Duration) *BookCache {
	return &BookCache{client: client, ttl: ttl}
}

// bookKey 缓存Key设计：book:{id}
func (c *BookCache) bookKey(id uint) string {
	return fmt.Sprintf("book:%d", id)
}

// GetBook 获取图书详情缓存
// 缓存未命中时返回(nil, nil)，调用方需要回源
func (c *BookCache) GetBook(ctx context.Context, id uint) (*book.Book, error) {
	val, err := c.client.Get(ctx, c.bookKey(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("获取缓存失败: %w", err)
	}

	var b book.Book
	if err := json.Unmarshal([]byte(val), &b); err != nil {
		return nil, fmt.Errorf("反序列化失败: %w", err)
	}

	return &b, nil
}

// SetBook 回填图书详情缓存
func (c *BookCache) SetBook(ctx context.Context, b *book.Book) error {
	val, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("序列化失败: %w", err)
	}

	if err := c.client.Set(ctx, c.bookKey(b.ID), val, c.ttl).Err(); err != nil {
		return fmt.Errorf("设置缓存失败: %w", err)
	}

	return nil
}

// DeleteBook 删除图书详情缓存（更新或删除图书时调用）
func (c *BookCache) DeleteBook(ctx context.Context, id uint) error {
	if err := c.client.Del(ctx, c.bookKey(id)).Err(); err != nil {
		return fmt.Errorf("删除缓存失败: %w", err)
	}
	return nil
}

// cachedBookRepository 带缓存的图书仓储装饰器
// 设计说明：
// 1. 实现book.Repository接口，包装任意底层实现（装饰器模式）
// 2. 缓存访问包在熔断器里：Redis故障时快速跳过缓存直接回源，
//    缓存层故障不影响正确性，只影响延迟
// 3. 事务内(context带tx标记)不走缓存，避免读到事务外的旧值
type cachedBookRepository struct {
	inner book.Repository
	cache *BookCache
	cb    *circuitbreaker.CircuitBreaker
}

// NewCachedBookRepository 创建带缓存的图书仓储
func NewCachedBookRepository(inner book.Repository, cache *BookCache, cb *circuitbreaker.CircuitBreaker) book.Repository {
	return &cachedBookRepository{inner: inner, cache: cache, cb: cb}
}

// Create 创建图书（写穿透，缓存无需处理：新ID不可能有缓存）
func (r *cachedBookRepository) Create(ctx context.Context, b *book.Book) error {
	return r.inner.Create(ctx, b)
}

// FindByID 查询图书详情（Cache-Aside）
func (r *cachedBookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	// 事务内直接回源
	if inTransaction(ctx) {
		return r.inner.FindByID(ctx, id)
	}

	// 1. 查缓存（熔断保护）
	var cached *book.Book
	err := r.cb.Execute(func() error {
		var e error
		cached, e = r.cache.GetBook(ctx, id)
		return e
	})
	if err == nil && cached != nil {
		return cached, nil
	}

	// 2. 回源数据库
	b, findErr := r.inner.FindByID(ctx, id)
	if findErr != nil {
		return nil, findErr
	}

	// 3. 回填缓存（尽力而为，失败只记日志）
	if err := r.cb.Execute(func() error {
		return r.cache.SetBook(ctx, b)
	}); err != nil {
		log.Printf("回填图书缓存失败 id=%d: %v", id, err)
	}

	return b, nil
}

// Update 更新图书后删除缓存
func (r *cachedBookRepository) Update(ctx context.Context, b *book.Book) error {
	if err := r.inner.Update(ctx, b); err != nil {
		return err
	}
	r.invalidate(ctx, b.ID)
	return nil
}

// Delete 删除图书后删除缓存
func (r *cachedBookRepository) Delete(ctx context.Context, id uint) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

// List 列表查询不走缓存
func (r *cachedBookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, error) {
	return r.inner.List(ctx, params)
}

// inTransaction 判断context是否携带任一存储实现的事务标记
// mysql用"tx"键传递*gorm.DB,memory用自己的非导出标记
func inTransaction(ctx context.Context) bool {
	if ctx.Value("tx") != nil {
		return true
	}
	return memory.InTransaction(ctx)
}

// invalidate 删除缓存，失败只记日志
// 删除失败时缓存会在TTL内保留旧值，TTL是不一致窗口的上界
func (r *cachedBookRepository) invalidate(ctx context.Context, id uint) {
	if err := r.cb.Execute(func() error {
		return r.cache.DeleteBook(ctx, id)
	}); err != nil {
		log.Printf("删除图书缓存失败 id=%d: %v", id, err)
	}
}
