package dto

// CreateBookRequest HTTP图书登记请求
// 书名/作者/简介允许空串,出版年份的业务规则由领域层校验,
// binding只拦截超长输入
type CreateBookRequest struct {
	ID            uint   `json:"id" binding:"required" example:"1"`
	Title         string `json:"title" binding:"max=200" example:"Go语言实战"`
	Author        string `json:"author" binding:"max=100" example:"威廉·肯尼迪"`
	Description   string `json:"description" binding:"max=5000" example:"这是一本关于Go语言的实战书籍"`
	PublishedYear int    `json:"published_year" example:"2016"`
}

// UpdateBookRequest HTTP图书全量更新请求(PUT)
// 路径中的ID是权威ID,请求体不携带ID
// 与登记一致,空串是合法值(PUT语义下会覆盖原值)
type UpdateBookRequest struct {
	Title         string `json:"title" binding:"max=200" example:"Go语言实战(第2版)"`
	Author        string `json:"author" binding:"max=100" example:"威廉·肯尼迪"`
	Description   string `json:"description" binding:"max=5000" example:"修订版"`
	PublishedYear int    `json:"published_year" example:"2022"`
}

// PatchBookRequest HTTP图书部分更新请求(PATCH)
// 指针字段区分"未提供"和"零值":
// - 字段缺席 → nil → 保持原值
// - 字段出现 → 指向新值(即使是空串)
// 该请求不走binding校验,由Handler用json.Decoder严格解析
type PatchBookRequest struct {
	Title         *string `json:"title" example:"Go语言实战(第2版)"`
	Author        *string `json:"author" example:"威廉·肯尼迪"`
	Description   *string `json:"description" example:"修订版"`
	PublishedYear *int    `json:"published_year" example:"2022"`
}

// SearchBooksRequest HTTP图书检索请求(query参数)
// 指针字段为nil表示不按该字段过滤;全部为nil时返回全部图书
type SearchBooksRequest struct {
	Title         *string `form:"title" example:"Go语言实战"`
	Author        *string `form:"author" example:"威廉·肯尼迪"`
	PublishedYear *int    `form:"published_year" example:"2016"`
}

// BookResponse HTTP图书响应
type BookResponse struct {
	ID            uint   `json:"id" example:"1"`
	Title         string `json:"title" example:"Go语言实战"`
	Author        string `json:"author" example:"威廉·肯尼迪"`
	Description   string `json:"description" example:"这是一本关于Go语言的实战书籍"`
	PublishedYear int    `json:"published_year" example:"2016"`
	CreatedAt     string `json:"created_at" example:"2024-01-15 10:30:00"`
	UpdatedAt     string `json:"updated_at" example:"2024-01-15 10:30:00"`
}
