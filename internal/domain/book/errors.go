package book

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrDuplicateID 馆藏编号已被占用
	ErrDuplicateID = apperrors.New(apperrors.ErrCodeDuplicateID, "图书ID已存在")

	// ErrYearInFuture 出版年份晚于当前年份
	ErrYearInFuture = apperrors.New(apperrors.ErrCodeInvalidField, "出版年份不能晚于当前年份")

	// ErrInvalidSortField 排序字段不在白名单内
	ErrInvalidSortField = apperrors.New(apperrors.ErrCodeInvalidArgument, "不支持的排序字段(仅支持title/author/published_year)")

	// ErrInvalidSortOrder 排序方向非法
	ErrInvalidSortOrder = apperrors.New(apperrors.ErrCodeInvalidArgument, "不支持的排序方向(仅支持asc/desc)")

	// ErrEmptyPatch PATCH请求一个字段都没提供
	ErrEmptyPatch = apperrors.New(apperrors.ErrCodeInvalidParams, "至少需要提供一个待更新字段")
)
