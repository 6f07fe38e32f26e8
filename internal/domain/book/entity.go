package book

import (
	"time"
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. Book是图书聚合的根实体,包含图书目录的核心属性
// 2. ID由调用方指定(目录编目场景:馆藏编号由馆员分配,不是数据库自增)
// 3. 除出版年份外不做字段格式约束,空字符串是合法值
type Book struct {
	ID            uint
	Title         string // 书名
	Author        string // 作者
	Description   string // 图书描述
	PublishedYear int    // 出版年份
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewBook 创建新图书(工厂方法)
// 参数说明:
// - id: 馆藏编号,由调用方指定,全局唯一
// - title/author/description: 基本信息,允许为空
// - publishedYear: 出版年份,需调用方通过Validate校验
func NewBook(id uint, title, author, description string, publishedYear int) *Book {
	now := time.Now()
	return &Book{
		ID:            id,
		Title:         title,
		Author:        author,
		Description:   description,
		PublishedYear: publishedYear,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Validate 校验图书字段(领域规则)
// 业务规则:出版年份不能晚于当前自然年
func (b *Book) Validate() error {
	if b.PublishedYear > time.Now().Year() {
		return ErrYearInFuture
	}
	return nil
}

// Patch 稀疏更新载荷
// 设计说明:
// 1. 指针字段区分"未提供"(nil)和"提供了零值"(指向零值)
// 2. 由ApplyTo合并到实体副本上,合并后整体重新校验
type Patch struct {
	Title         *string
	Author        *string
	Description   *string
	PublishedYear *int
}

// IsEmpty 判断载荷是否一个字段都没提供
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Author == nil && p.Description == nil && p.PublishedYear == nil
}

// ApplyTo 把载荷合并到图书副本上,返回合并结果
// 原实体不被修改,调用方校验通过后再决定是否写回
func (p Patch) ApplyTo(b *Book) *Book {
	merged := *b
	if p.Title != nil {
		merged.Title = *p.Title
	}
	if p.Author != nil {
		merged.Author = *p.Author
	}
	if p.Description != nil {
		merged.Description = *p.Description
	}
	if p.PublishedYear != nil {
		merged.PublishedYear = *p.PublishedYear
	}
	merged.UpdatedAt = time.Now()
	return &merged
}

// UpdateInfo 全量替换图书信息(PUT语义)
// 与Patch不同:所有字段都会被覆盖,包括空值
func (b *Book) UpdateInfo(title, author, description string, publishedYear int) {
	b.Title = title
	b.Author = author
	b.Description = description
	b.PublishedYear = publishedYear
	b.UpdatedAt = time.Now()
}
