package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// bookRepository 图书仓储的内存实现
type bookRepository struct {
	store *Store
}

// NewBookRepository 创建图书仓储
func NewBookRepository(store *Store) book.Repository {
	return &bookRepository{store: store}
}

// Create 创建图书
// ID由调用方指定,已占用时返回ErrDuplicateID
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	if _, exists := r.store.books[b.ID]; exists {
		return book.ErrDuplicateID
	}

	r.store.books[b.ID] = cloneBook(b)
	r.store.bookOrder = append(r.store.bookOrder, b.ID)
	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	b, exists := r.store.books[id]
	if !exists {
		return nil, book.ErrBookNotFound
	}
	return cloneBook(b), nil
}

// Update 更新图书(整体覆盖,插入顺序和创建时间保持不变)
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	old, exists := r.store.books[b.ID]
	if !exists {
		return book.ErrBookNotFound
	}

	updated := cloneBook(b)
	updated.CreatedAt = old.CreatedAt
	r.store.books[b.ID] = updated
	return nil
}

// Delete 删除图书
// 同时清理该书的分类关联:编号可以复用,
// 旧关联残留会挂到复用同一编号的新书上
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	if _, exists := r.store.books[id]; !exists {
		return book.ErrBookNotFound
	}

	delete(r.store.books, id)
	for i, bid := range r.store.bookOrder {
		if bid == id {
			r.store.bookOrder = append(r.store.bookOrder[:i], r.store.bookOrder[i+1:]...)
			break
		}
	}

	kept := r.store.assocSeq[:0]
	for _, a := range r.store.assocSeq {
		if a.bookID == id {
			delete(r.store.assocs, a)
			continue
		}
		kept = append(kept, a)
	}
	r.store.assocSeq = kept
	return nil
}

// List 查询图书列表
// 先按插入顺序收集并过滤,再按需稳定排序,相等元素保持插入顺序
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	result := make([]*book.Book, 0, len(r.store.bookOrder))
	for _, id := range r.store.bookOrder {
		b := r.store.books[id]
		if !matchBook(b, params) {
			continue
		}
		result = append(result, cloneBook(b))
	}

	if params.SortField != "" {
		sortBooks(result, params.SortField, params.SortOrder)
	}

	return result, nil
}

// matchBook 精确匹配过滤,nil条件不限制
func matchBook(b *book.Book, params book.ListParams) bool {
	if params.Title != nil && b.Title != *params.Title {
		return false
	}
	if params.Author != nil && b.Author != *params.Author {
		return false
	}
	if params.PublishedYear != nil && b.PublishedYear != *params.PublishedYear {
		return false
	}
	return true
}

// sortBooks 稳定排序
// 字符串比较用strings.Compare(字节序),与mysql实现的BINARY排序一致
func sortBooks(books []*book.Book, field, order string) {
	less := func(a, b *book.Book) bool {
		switch field {
		case book.SortFieldTitle:
			return strings.Compare(a.Title, b.Title) < 0
		case book.SortFieldAuthor:
			return strings.Compare(a.Author, b.Author) < 0
		case book.SortFieldPublishedYear:
			return a.PublishedYear < b.PublishedYear
		default:
			return false
		}
	}

	sort.SliceStable(books, func(i, j int) bool {
		if order == book.SortOrderDesc {
			return less(books[j], books[i])
		}
		return less(books[i], books[j])
	})
}

// cloneBook 深拷贝图书实体
func cloneBook(b *book.Book) *book.Book {
	c := *b
	return &c
}
