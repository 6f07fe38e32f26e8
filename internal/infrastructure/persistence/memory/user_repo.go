package memory

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// userRepository 用户仓储的内存实现
type userRepository struct {
	store *Store
}

// NewUserRepository 创建用户仓储
func NewUserRepository(store *Store) user.Repository {
	return &userRepository{store: store}
}

// Create 创建用户,ID自增分配
// 邮箱唯一性由usersByEmail索引保证,对应mysql的UNIQUE约束
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	if _, exists := r.store.usersByEmail[u.Email]; exists {
		return apperrors.ErrEmailDuplicate
	}

	r.store.nextUserID++
	u.ID = r.store.nextUserID

	r.store.users[u.ID] = cloneUser(u)
	r.store.usersByEmail[u.Email] = u.ID
	return nil
}

// FindByID 根据ID查找用户
func (r *userRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	u, exists := r.store.users[id]
	if !exists {
		return nil, apperrors.ErrUserNotFound
	}
	return cloneUser(u), nil
}

// FindByEmail 根据邮箱查找用户
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	id, exists := r.store.usersByEmail[email]
	if !exists {
		return nil, apperrors.ErrUserNotFound
	}
	return cloneUser(r.store.users[id]), nil
}

// Update 更新用户信息
func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	old, exists := r.store.users[u.ID]
	if !exists {
		return apperrors.ErrUserNotFound
	}

	// 邮箱变更时维护索引
	if old.Email != u.Email {
		if _, taken := r.store.usersByEmail[u.Email]; taken {
			return apperrors.ErrEmailDuplicate
		}
		delete(r.store.usersByEmail, old.Email)
		r.store.usersByEmail[u.Email] = u.ID
	}

	updated := cloneUser(u)
	updated.CreatedAt = old.CreatedAt
	r.store.users[u.ID] = updated
	return nil
}

// Delete 删除用户
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	u, exists := r.store.users[id]
	if !exists {
		return apperrors.ErrUserNotFound
	}

	delete(r.store.usersByEmail, u.Email)
	delete(r.store.users, id)
	return nil
}

// cloneUser 深拷贝用户实体
func cloneUser(u *user.User) *user.User {
	c := *u
	return &c
}
