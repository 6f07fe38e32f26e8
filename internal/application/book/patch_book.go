package book

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// PatchBookUseCase 图书部分更新用例(PATCH语义)
// 设计说明:
// 1. 只更新请求中出现的字段,未出现的字段保持原值
// 2. 合并到副本后整体重新校验,校验失败时原记录保持不变(全有或全无)
// 3. 空请求体(一个字段都没有)返回参数错误
type PatchBookUseCase struct {
	bookService book.Service
}

// NewPatchBookUseCase 创建部分更新用例
func NewPatchBookUseCase(bookService book.Service) *PatchBookUseCase {
	return &PatchBookUseCase{
		bookService: bookService,
	}
}

// PatchBookRequest 部分更新请求DTO
// 指针字段为nil表示不更新该字段
type PatchBookRequest struct {
	ID            uint    // 图书ID(从路径参数获取)
	Title         *string // 书名
	Author        *string // 作者
	Description   *string // 图书描述
	PublishedYear *int    // 出版年份
}

// Execute 执行部分更新
func (uc *PatchBookUseCase) Execute(ctx context.Context, req PatchBookRequest) (*BookView, error) {
	b, err := uc.bookService.PatchBook(ctx, req.ID, book.Patch{
		Title:         req.Title,
		Author:        req.Author,
		Description:   req.Description,
		PublishedYear: req.PublishedYear,
	})
	if err != nil {
		return nil, err
	}

	return newBookView(b), nil
}
