package dto

// RentBookRequest HTTP借书请求
type RentBookRequest struct {
	UserID uint `json:"user_id" binding:"required" example:"1"`
	BookID uint `json:"book_id" binding:"required" example:"1"`
}

// RentalResponse HTTP借阅记录响应
type RentalResponse struct {
	ID         uint   `json:"id" example:"1"`
	UserID     uint   `json:"user_id" example:"1"`
	BookID     uint   `json:"book_id" example:"1"`
	Returned   bool   `json:"returned" example:"false"`
	RentedAt   string `json:"rented_at" example:"2024-01-15 10:30:00"`
	ReturnedAt string `json:"returned_at,omitempty" example:"2024-01-20 09:00:00"`
}

// ListRentalsRequest HTTP借阅记录列表请求(query参数)
type ListRentalsRequest struct {
	UserID *uint `form:"user_id" example:"1"` // 按借阅人过滤(缺席表示不过滤)
}
