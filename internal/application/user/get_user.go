package user

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
)

// GetUserUseCase 用户详情查询用例
type GetUserUseCase struct {
	userService user.Service
}

// NewGetUserUseCase 创建用户详情查询用例
func NewGetUserUseCase(userService user.Service) *GetUserUseCase {
	return &GetUserUseCase{
		userService: userService,
	}
}

// UserProfile 用户详情DTO
type UserProfile struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	CreatedAt string `json:"created_at"`
}

// Execute 执行查询
// 用户不存在时返回用户不存在错误
func (uc *GetUserUseCase) Execute(ctx context.Context, id uint) (*UserProfile, error) {
	u, err := uc.userService.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	return &UserProfile{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}
