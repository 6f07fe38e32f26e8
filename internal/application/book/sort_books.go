package book

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// SortBooksUseCase 图书排序查询用例
// 设计说明:
// 1. 排序字段限定在白名单{title, author, published_year}内
// 2. 排序方向必须是asc或desc,非法值返回参数错误而非静默回退
// 3. 排序稳定,相等元素保持登记顺序
type SortBooksUseCase struct {
	bookService book.Service
}

// NewSortBooksUseCase 创建排序查询用例
func NewSortBooksUseCase(bookService book.Service) *SortBooksUseCase {
	return &SortBooksUseCase{
		bookService: bookService,
	}
}

// SortBooksRequest 排序请求DTO
type SortBooksRequest struct {
	Field string // 排序字段(title/author/published_year)
	Order string // 排序方向(asc/desc)
}

// Execute 执行排序查询
// 字段或方向非法时返回book.ErrInvalidSortField/ErrInvalidSortOrder
func (uc *SortBooksUseCase) Execute(ctx context.Context, req SortBooksRequest) ([]*BookView, error) {
	books, err := uc.bookService.SortBooks(ctx, req.Field, req.Order)
	if err != nil {
		return nil, err
	}

	return newBookViews(books), nil
}
