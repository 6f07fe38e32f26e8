package category

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/category"
)

// AssignCategoryUseCase 图书打标用例
// 设计说明:
// 1. 图书和分类必须都存在,否则返回对应的NotFound错误
// 2. 重复打标是幂等操作,不报错
type AssignCategoryUseCase struct {
	categoryService category.Service
}

// NewAssignCategoryUseCase 创建打标用例
func NewAssignCategoryUseCase(categoryService category.Service) *AssignCategoryUseCase {
	return &AssignCategoryUseCase{
		categoryService: categoryService,
	}
}

// Execute 执行打标
func (uc *AssignCategoryUseCase) Execute(ctx context.Context, bookID, categoryID uint) error {
	return uc.categoryService.AssignToBook(ctx, bookID, categoryID)
}
