package rental

import (
	"time"
)

// 借阅事件路由键
const (
	RoutingKeyRentalCreated  = "rental.created"
	RoutingKeyRentalReturned = "rental.returned"
)

// EventPublisher 事件发布接口
// 设计说明:
// 1. 应用层只依赖这个小接口,不依赖具体的消息中间件
// 2. pkg/mq的Publisher天然满足该接口
// 3. 注入nil表示不发布事件(消息队列未启用时)
type EventPublisher interface {
	Publish(routingKey string, message interface{}) error
}

// RentalCreatedEvent 借阅创建事件
type RentalCreatedEvent struct {
	RentalID uint      `json:"rental_id"`
	UserID   uint      `json:"user_id"`
	BookID   uint      `json:"book_id"`
	RentedAt time.Time `json:"rented_at"`
}

// RentalReturnedEvent 借阅归还事件
type RentalReturnedEvent struct {
	RentalID   uint      `json:"rental_id"`
	UserID     uint      `json:"user_id"`
	BookID     uint      `json:"book_id"`
	ReturnedAt time.Time `json:"returned_at"`
}
