package category

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/category"
)

// ListCategoriesUseCase 分类列表用例
type ListCategoriesUseCase struct {
	categoryService category.Service
}

// NewListCategoriesUseCase 创建分类列表用例
func NewListCategoriesUseCase(categoryService category.Service) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		categoryService: categoryService,
	}
}

// Execute 执行列表查询,结果按创建顺序返回
func (uc *ListCategoriesUseCase) Execute(ctx context.Context) ([]*CategoryView, error) {
	categories, err := uc.categoryService.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	return newCategoryViews(categories), nil
}
