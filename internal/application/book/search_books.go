package book

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// SearchBooksUseCase 图书精确检索用例
// 设计说明:
// 1. 所有条件精确匹配,多个条件之间是AND关系
// 2. nil表示不限制该字段;一个条件都不给时返回全部图书
// 3. 无匹配结果返回空列表而非错误
type SearchBooksUseCase struct {
	bookService book.Service
}

// NewSearchBooksUseCase 创建检索用例
func NewSearchBooksUseCase(bookService book.Service) *SearchBooksUseCase {
	return &SearchBooksUseCase{
		bookService: bookService,
	}
}

// SearchBooksRequest 检索请求DTO
// 指针字段为nil表示不按该字段过滤
type SearchBooksRequest struct {
	Title         *string // 书名(精确匹配)
	Author        *string // 作者(精确匹配)
	PublishedYear *int    // 出版年份(精确匹配)
}

// Execute 执行检索
func (uc *SearchBooksUseCase) Execute(ctx context.Context, req SearchBooksRequest) ([]*BookView, error) {
	books, err := uc.bookService.SearchBooks(ctx, book.Filter{
		Title:         req.Title,
		Author:        req.Author,
		PublishedYear: req.PublishedYear,
	})
	if err != nil {
		return nil, err
	}

	return newBookViews(books), nil
}
