package category

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/category"
)

// RemoveCategoryUseCase 图书去标用例
// 移除不存在的关联是幂等操作,不报错
type RemoveCategoryUseCase struct {
	categoryService category.Service
}

// NewRemoveCategoryUseCase 创建去标用例
func NewRemoveCategoryUseCase(categoryService category.Service) *RemoveCategoryUseCase {
	return &RemoveCategoryUseCase{
		categoryService: categoryService,
	}
}

// Execute 执行去标
func (uc *RemoveCategoryUseCase) Execute(ctx context.Context, bookID, categoryID uint) error {
	return uc.categoryService.RemoveFromBook(ctx, bookID, categoryID)
}
