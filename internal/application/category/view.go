package category

import (
	"github.com/xiebiao/bookcatalog/internal/domain/category"
)

// CategoryView 分类响应DTO
type CategoryView struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

// newCategoryView 领域实体转响应DTO
func newCategoryView(c *category.Category) *CategoryView {
	return &CategoryView{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// newCategoryViews 批量转换
func newCategoryViews(categories []*category.Category) []*CategoryView {
	views := make([]*CategoryView, len(categories))
	for i, c := range categories {
		views[i] = newCategoryView(c)
	}
	return views
}
