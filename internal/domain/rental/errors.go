package rental

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 借阅领域错误定义
var (
	// ErrRentalNotFound 借阅记录不存在
	ErrRentalNotFound = apperrors.New(apperrors.ErrCodeRentalNotFound, "借阅记录不存在")

	// ErrBookUnavailable 图书已被借出(存在在借记录)
	ErrBookUnavailable = apperrors.New(apperrors.ErrCodeBookUnavailable, "图书已被借出")
)
