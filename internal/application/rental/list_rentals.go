package rental

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/rental"
)

// ListRentalsUseCase 借阅记录列表用例
// 不传UserID时返回全部记录,传UserID时只返回该用户的借阅历史
type ListRentalsUseCase struct {
	rentalService rental.Service
}

// NewListRentalsUseCase 创建借阅记录列表用例
func NewListRentalsUseCase(rentalService rental.Service) *ListRentalsUseCase {
	return &ListRentalsUseCase{
		rentalService: rentalService,
	}
}

// ListRentalsRequest 列表请求DTO
type ListRentalsRequest struct {
	UserID *uint // 按借阅人过滤(nil表示不过滤)
}

// Execute 执行列表查询,结果按创建顺序返回
func (uc *ListRentalsUseCase) Execute(ctx context.Context, req ListRentalsRequest) ([]*RentalView, error) {
	var (
		rentals []*rental.Rental
		err     error
	)

	if req.UserID != nil {
		rentals, err = uc.rentalService.ListUserRentals(ctx, *req.UserID)
	} else {
		rentals, err = uc.rentalService.ListRentals(ctx)
	}
	if err != nil {
		return nil, err
	}

	return newRentalViews(rentals), nil
}
