package rental

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/rental"
)

// GetRentalUseCase 借阅记录查询用例
type GetRentalUseCase struct {
	rentalService rental.Service
}

// NewGetRentalUseCase 创建借阅记录查询用例
func NewGetRentalUseCase(rentalService rental.Service) *GetRentalUseCase {
	return &GetRentalUseCase{
		rentalService: rentalService,
	}
}

// Execute 执行查询
// 记录不存在时返回rental.ErrRentalNotFound
func (uc *GetRentalUseCase) Execute(ctx context.Context, id uint) (*RentalView, error) {
	r, err := uc.rentalService.GetRental(ctx, id)
	if err != nil {
		return nil, err
	}

	return newRentalView(r), nil
}
