package category

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/category"
)

// CreateCategoryUseCase 分类创建用例
// 分类名全局唯一,重名由领域服务返回category.ErrCategoryDuplicate
type CreateCategoryUseCase struct {
	categoryService category.Service
}

// NewCreateCategoryUseCase 创建分类创建用例
func NewCreateCategoryUseCase(categoryService category.Service) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		categoryService: categoryService,
	}
}

// CreateCategoryRequest 分类创建请求DTO
type CreateCategoryRequest struct {
	Name string // 分类名
}

// Execute 执行分类创建
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, req CreateCategoryRequest) (*CategoryView, error) {
	c, err := uc.categoryService.CreateCategory(ctx, req.Name)
	if err != nil {
		return nil, err
	}

	return newCategoryView(c), nil
}
