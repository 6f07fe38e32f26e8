package rental

import (
	"github.com/xiebiao/bookcatalog/internal/domain/rental"
)

// RentalView 借阅记录响应DTO
type RentalView struct {
	ID         uint   `json:"id"`
	UserID     uint   `json:"user_id"`
	BookID     uint   `json:"book_id"`
	Returned   bool   `json:"returned"`
	RentedAt   string `json:"rented_at"`
	ReturnedAt string `json:"returned_at,omitempty"` // 未归还时为空
}

// newRentalView 领域实体转响应DTO
func newRentalView(r *rental.Rental) *RentalView {
	view := &RentalView{
		ID:       r.ID,
		UserID:   r.UserID,
		BookID:   r.BookID,
		Returned: r.Returned,
		RentedAt: r.RentedAt.Format("2006-01-02 15:04:05"),
	}
	if r.ReturnedAt != nil {
		view.ReturnedAt = r.ReturnedAt.Format("2006-01-02 15:04:05")
	}
	return view
}

// newRentalViews 批量转换
func newRentalViews(rentals []*rental.Rental) []*RentalView {
	views := make([]*RentalView, len(rentals))
	for i, r := range rentals {
		views[i] = newRentalView(r)
	}
	return views
}
