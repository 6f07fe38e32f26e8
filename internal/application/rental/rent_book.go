package rental

import (
	"context"
	"errors"
	"log"

	"github.com/xiebiao/bookcatalog/internal/domain/rental"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// RentBookUseCase 借书用例
// 教学要点:这是整个项目最核心的用例之一
// 涉及:事务处理、并发控制、业务规则校验、事件发布
type RentBookUseCase struct {
	rentalService rental.Service
	publisher     EventPublisher // 可为nil(消息队列未启用)
}

// NewRentBookUseCase 创建借书用例
func NewRentBookUseCase(rentalService rental.Service, publisher EventPublisher) *RentBookUseCase {
	return &RentBookUseCase{
		rentalService: rentalService,
		publisher:     publisher,
	}
}

// RentBookRequest 借书请求DTO
type RentBookRequest struct {
	UserID uint // 借阅人ID
	BookID uint // 图书ID
}

// Execute 执行借书用例
// 教学重点:防止同一本书被重复借出的完整流程
//
// 核心问题:并发借书冲突
// 场景:一本书只有一册,两人同时借
// 错误实现:
//  1. 查询在借记录 → 无
//  2. 判断可借 → 可借
//  3. 写入借阅记录
//     结果:两个请求都通过了步骤2,同一本书出现两条在借记录!
//
// 正确实现:领域服务在事务内完成"检查+写入"
// (内存存储用全局写锁,MySQL用SELECT FOR UPDATE)
func (uc *RentBookUseCase) Execute(ctx context.Context, req RentBookRequest) (*RentalView, error) {
	r, err := uc.rentalService.RentBook(ctx, req.UserID, req.BookID)
	if err != nil {
		// 借阅冲突单独计数,便于在Grafana观察热门图书
		if errors.Is(err, rental.ErrBookUnavailable) {
			metrics.IncCounter(metrics.RentalConflictsTotal)
		}
		return nil, err
	}

	metrics.IncCounter(metrics.RentalsCreatedTotal)

	// 事件发布失败不影响借阅结果(最终一致性)
	uc.publishCreated(r)

	return newRentalView(r), nil
}

// publishCreated 发布借阅创建事件
func (uc *RentBookUseCase) publishCreated(r *rental.Rental) {
	if uc.publisher == nil {
		return
	}

	event := RentalCreatedEvent{
		RentalID: r.ID,
		UserID:   r.UserID,
		BookID:   r.BookID,
		RentedAt: r.RentedAt,
	}
	if err := uc.publisher.Publish(RoutingKeyRentalCreated, event); err != nil {
		log.Printf("发布借阅事件失败: rental_id=%d, err=%v", r.ID, err)
		return
	}

	metrics.IncCounterVec(metrics.MessagesPublishedTotal, map[string]string{
		"routing_key": RoutingKeyRentalCreated,
	})
}
