package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/memory"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 教学说明：用户领域服务单元测试
//
// 覆盖注册的业务规则（邮箱格式、密码强度、邮箱唯一性）和登录验证

// newUserService 构造测试用的用户服务
func newUserService() user.Service {
	return user.NewService(memory.NewUserRepository(memory.NewStore()))
}

// TestRegister 测试借阅人注册
func TestRegister(t *testing.T) {
	t.Run("正常注册", func(t *testing.T) {
		svc := newUserService()

		u, err := svc.Register(context.Background(), "reader@test.com", "Test1234", "张三", "13800138000")

		require.NoError(t, err)
		assert.NotZero(t, u.ID, "用户ID应该自增分配")
		assert.Equal(t, "reader@test.com", u.Email)
		assert.NotEqual(t, "Test1234", u.Password, "密码应该加密存储")

		t.Logf("✓ 注册成功，用户ID: %d", u.ID)
	})

	t.Run("邮箱格式非法", func(t *testing.T) {
		svc := newUserService()

		_, err := svc.Register(context.Background(), "not-an-email", "Test1234", "张三", "")

		assert.Error(t, err, "非法邮箱应该失败")

		t.Logf("✓ 非法邮箱正确被拒绝: %v", err)
	})

	t.Run("密码强度不足", func(t *testing.T) {
		svc := newUserService()

		cases := []struct {
			name     string
			password string
		}{
			{"长度不足8位", "Abc123"},
			{"纯数字", "12345678"},
			{"纯字母", "abcdefgh"},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.Register(context.Background(), "weak@test.com", tc.password, "张三", "")
				assert.ErrorIs(t, err, apperrors.ErrWeakPassword)
			})
		}

		t.Logf("✓ 弱密码全部被拒绝")
	})

	t.Run("邮箱重复", func(t *testing.T) {
		svc := newUserService()

		_, err := svc.Register(context.Background(), "dup@test.com", "Test1234", "张三", "")
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), "dup@test.com", "Test1234", "李四", "")

		assert.ErrorIs(t, err, apperrors.ErrEmailDuplicate)

		t.Logf("✓ 重复邮箱正确被拒绝: %v", err)
	})

	t.Run("姓名长度校验", func(t *testing.T) {
		svc := newUserService()

		_, err := svc.Register(context.Background(), "name@test.com", "Test1234", "W", "")

		assert.Error(t, err, "单字符姓名应该失败")

		t.Logf("✓ 过短姓名正确被拒绝: %v", err)
	})
}

// TestLogin 测试登录
func TestLogin(t *testing.T) {
	svc := newUserService()
	_, err := svc.Register(context.Background(), "login@test.com", "Test1234", "张三", "")
	require.NoError(t, err)

	t.Run("正常登录", func(t *testing.T) {
		u, err := svc.Login(context.Background(), "login@test.com", "Test1234")

		require.NoError(t, err)
		assert.Equal(t, "login@test.com", u.Email)

		t.Logf("✓ 登录成功: %s", u.Email)
	})

	t.Run("密码错误", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "login@test.com", "WrongPwd1")

		assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)

		t.Logf("✓ 错误密码正确被拒绝: %v", err)
	})

	t.Run("邮箱不存在", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "nobody@test.com", "Test1234")

		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

		t.Logf("✓ 不存在的邮箱正确返回: %v", err)
	})
}

// TestGetUser 测试档案查询
func TestGetUser(t *testing.T) {
	svc := newUserService()
	created, err := svc.Register(context.Background(), "profile@test.com", "Test1234", "张三", "13800138000")
	require.NoError(t, err)

	t.Run("查询存在的借阅人", func(t *testing.T) {
		u, err := svc.GetUser(context.Background(), created.ID)

		require.NoError(t, err)
		assert.Equal(t, "张三", u.Name)
		assert.Equal(t, "13800138000", u.Phone)

		t.Logf("✓ 档案查询成功: %s", u.Name)
	})

	t.Run("查询不存在的借阅人", func(t *testing.T) {
		_, err := svc.GetUser(context.Background(), 999)

		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

		t.Logf("✓ 不存在的借阅人正确返回: %v", err)
	})
}
