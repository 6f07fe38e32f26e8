package book

import (
	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// BookView 图书响应DTO
// 设计说明:
// 1. 所有图书用例共用同一个视图结构,避免每个用例重复定义
// 2. 时间字段格式化为字符串,与HTTP层解耦
type BookView struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Description   string `json:"description"`
	PublishedYear int    `json:"published_year"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// newBookView 领域实体转响应DTO
func newBookView(b *book.Book) *BookView {
	return &BookView{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		Description:   b.Description,
		PublishedYear: b.PublishedYear,
		CreatedAt:     b.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:     b.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// newBookViews 批量转换
func newBookViews(books []*book.Book) []*BookView {
	views := make([]*BookView, len(books))
	for i, b := range books {
		views[i] = newBookView(b)
	}
	return views
}
