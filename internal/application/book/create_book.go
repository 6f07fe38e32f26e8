package book

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// CreateBookUseCase 图书登记用例
// 设计说明:
// 1. 应用层负责用例编排,协调领域服务完成业务流程
// 2. 输入输出使用DTO(Data Transfer Object),与HTTP层解耦
// 3. ID由调用方指定,重复登记由领域服务返回错误
type CreateBookUseCase struct {
	bookService book.Service
}

// NewCreateBookUseCase 创建登记用例
func NewCreateBookUseCase(bookService book.Service) *CreateBookUseCase {
	return &CreateBookUseCase{
		bookService: bookService,
	}
}

// CreateBookRequest 登记请求DTO
type CreateBookRequest struct {
	ID            uint   // 图书ID(调用方指定)
	Title         string // 书名
	Author        string // 作者
	Description   string // 图书描述
	PublishedYear int    // 出版年份
}

// Execute 执行登记用例
// 学习要点:
// 1. 应用层不直接操作Repository,通过领域服务间接操作
// 2. 业务规则校验由领域服务负责(出版年份范围、ID重复检查等)
// 3. 应用层只负责流程编排和指标上报
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (*BookView, error) {
	// 调用领域服务登记图书
	// 领域服务会处理:出版年份校验、ID重复检查等
	b, err := uc.bookService.CreateBook(
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

	metrics.IncCounter(metrics.BooksCreatedTotal)

	return newBookView(b), nil
}
