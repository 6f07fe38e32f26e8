package rental

import (
	"context"
	"log"

	"github.com/xiebiao/bookcatalog/internal/domain/rental"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// ReturnBookUseCase 还书用例
// 设计说明:
// 归还是幂等操作:已归还的记录再次归还不报错,直接返回当前状态
type ReturnBookUseCase struct {
	rentalService rental.Service
	publisher     EventPublisher // 可为nil(消息队列未启用)
}

// NewReturnBookUseCase 创建还书用例
func NewReturnBookUseCase(rentalService rental.Service, publisher EventPublisher) *ReturnBookUseCase {
	return &ReturnBookUseCase{
		rentalService: rentalService,
		publisher:     publisher,
	}
}

// Execute 执行还书用例
// 借阅记录不存在时返回rental.ErrRentalNotFound
func (uc *ReturnBookUseCase) Execute(ctx context.Context, rentalID uint) (*RentalView, error) {
	r, err := uc.rentalService.ReturnBook(ctx, rentalID)
	if err != nil {
		return nil, err
	}

	metrics.IncCounter(metrics.RentalsReturnedTotal)

	// 事件发布失败不影响归还结果(最终一致性)
	uc.publishReturned(r)

	return newRentalView(r), nil
}

// publishReturned 发布借阅归还事件
func (uc *ReturnBookUseCase) publishReturned(r *rental.Rental) {
	if uc.publisher == nil || r.ReturnedAt == nil {
		return
	}

	event := RentalReturnedEvent{
		RentalID:   r.ID,
		UserID:     r.UserID,
		BookID:     r.BookID,
		ReturnedAt: *r.ReturnedAt,
	}
	if err := uc.publisher.Publish(RoutingKeyRentalReturned, event); err != nil {
		log.Printf("发布归还事件失败: rental_id=%d, err=%v", r.ID, err)
		return
	}

	metrics.IncCounterVec(metrics.MessagesPublishedTotal, map[string]string{
		"routing_key": RoutingKeyRentalReturned,
	})
}
