package rental

import (
	"time"
)

// Rental 借阅记录实体(聚合根)
// 教学要点:
// 1. Rental是借出操作的事实记录,归还后保留(借阅历史)
// 2. 不直接关联User/Book对象,只保存ID(避免跨聚合引用)
// 3. "在借"定义:Returned为false的记录;同一本书同时最多一条在借记录
type Rental struct {
	ID         uint
	UserID     uint       // 借阅人ID
	BookID     uint       // 图书ID
	Returned   bool       // 是否已归还
	RentedAt   time.Time  // 借出时间
	ReturnedAt *time.Time // 归还时间(未归还为nil)
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewRental 创建借阅记录(工厂方法)
// 初始状态为在借(Returned=false)
func NewRental(userID, bookID uint) *Rental {
	now := time.Now()
	return &Rental{
		UserID:    userID,
		BookID:    bookID,
		Returned:  false,
		RentedAt:  now,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// MarkReturned 归还(领域行为)
// 返回值表示本次调用是否改变了状态:
// 已归还的记录再次归还是无操作,不报错(幂等)
func (r *Rental) MarkReturned() bool {
	if r.Returned {
		return false
	}
	now := time.Now()
	r.Returned = true
	r.ReturnedAt = &now
	r.UpdatedAt = now
	return true
}

// IsOutstanding 是否在借
func (r *Rental) IsOutstanding() bool {
	return !r.Returned
}

// IsOwnedBy 检查借阅记录是否属于指定用户
func (r *Rental) IsOwnedBy(userID uint) bool {
	return r.UserID == userID
}
