package dto

// CreateCategoryRequest HTTP分类创建请求
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=100" example:"计算机"`
}

// CategoryResponse HTTP分类响应
type CategoryResponse struct {
	ID        uint   `json:"id" example:"1"`
	Name      string `json:"name" example:"计算机"`
	CreatedAt string `json:"created_at" example:"2024-01-15 10:30:00"`
}

// AssignCategoryRequest HTTP图书打标请求
type AssignCategoryRequest struct {
	CategoryID uint `json:"category_id" binding:"required" example:"1"`
}
