package book

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// UpdateBookUseCase 图书全量更新用例(PUT语义)
// 设计说明:
// 1. 路径中的ID是权威ID,请求体不携带ID
// 2. 替换前重新执行完整校验,校验失败时原记录保持不变
type UpdateBookUseCase struct {
	bookService book.Service
}

// NewUpdateBookUseCase 创建全量更新用例
func NewUpdateBookUseCase(bookService book.Service) *UpdateBookUseCase {
	return &UpdateBookUseCase{
		bookService: bookService,
	}
}

// UpdateBookRequest 全量更新请求DTO
type UpdateBookRequest struct {
	ID            uint   // 图书ID(从路径参数获取)
	Title         string // 书名
	Author        string // 作者
	Description   string // 图书描述
	PublishedYear int    // 出版年份
}

// Execute 执行全量更新
func (uc *UpdateBookUseCase) Execute(ctx context.Context, req UpdateBookRequest) (*BookView, error) {
	b, err := uc.bookService.UpdateBook(
		ctx,
		req.ID,
		req.Title,
		req.Author,
		req.Description,
		req.PublishedYear,
	)
	if err != nil {
		return nil, err
	}

	return newBookView(b), nil
}
