package category

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 分类领域错误定义
var (
	// ErrCategoryNotFound 分类不存在
	ErrCategoryNotFound = apperrors.New(apperrors.ErrCodeCategoryNotFound, "分类不存在")

	// ErrCategoryDuplicate 分类名已存在
	ErrCategoryDuplicate = apperrors.New(apperrors.ErrCodeCategoryDuplicate, "分类名已存在")

	// ErrEmptyName 分类名为空
	ErrEmptyName = apperrors.New(apperrors.ErrCodeInvalidParams, "分类名不能为空")
)
