package category

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/category"
)

// ListBookCategoriesUseCase 图书分类查询用例
// 返回指定图书的全部分类,按打标顺序排列
type ListBookCategoriesUseCase struct {
	categoryService category.Service
}

// NewListBookCategoriesUseCase 创建图书分类查询用例
func NewListBookCategoriesUseCase(categoryService category.Service) *ListBookCategoriesUseCase {
	return &ListBookCategoriesUseCase{
		categoryService: categoryService,
	}
}

// Execute 执行查询
// 图书不存在时返回book.ErrBookNotFound
func (uc *ListBookCategoriesUseCase) Execute(ctx context.Context, bookID uint) ([]*CategoryView, error) {
	categories, err := uc.categoryService.ListBookCategories(ctx, bookID)
	if err != nil {
		return nil, err
	}

	return newCategoryViews(categories), nil
}
