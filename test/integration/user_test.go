package integration

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 教学说明：用户模块集成测试
//
// 集成测试 vs 单元测试：
// - 单元测试：Mock外部依赖（数据库、Redis），测试单个函数的逻辑
// - 集成测试：使用真实的服务进程，测试完整的API流程
//
// 集成测试的价值：
// 1. 验证各组件协同工作（Handler → UseCase → Service → Repository → Storage）
// 2. 发现配置错误（如数据库连接、Wire依赖注入）
// 3. 验证业务流程的完整性
//
// 运行方式：
//   make test-integration   # 需要先启动服务
//   go test -v ./test/integration/...

// TestUserRegister 测试用户注册功能
//
// 测试场景：
// 1. 正常注册
// 2. 重复邮箱注册（应失败）
// 3. 邮箱格式校验
// 4. 密码强度校验
func TestUserRegister(t *testing.T) {
	RequireServer(t)

	// 教学说明：使用t.Run()组织子测试
	// 好处：
	// 1. 测试结果更清晰（可以看到每个子场景的结果）
	// 2. 子测试失败不影响其他子测试
	// 3. 可以使用 go test -run=TestUserRegister/正常注册 运行单个子测试

	t.Run("正常注册", func(t *testing.T) {
		email := GenerateTestEmail("normal_user")
		registerReq := map[string]string{
			"email":    email,
			"password": "Test1234",
			"name":     "测试用户",
			"phone":    "13800138000",
		}

		resp := PostJSON(t, BaseURL+"/users/register", registerReq, "")

		assert.Equal(t, 0, resp.Code, "注册应该成功")

		var data RegisterData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err, "解析响应数据失败")

		assert.NotZero(t, data.ID, "用户ID应该大于0")
		assert.Equal(t, email, data.Email, "返回的邮箱应该与请求一致")
		assert.Equal(t, "测试用户", data.Name, "返回的姓名应该与请求一致")

		t.Logf("✓ 注册成功，用户ID: %d", data.ID)
	})

	t.Run("重复邮箱注册应失败", func(t *testing.T) {
		email := GenerateTestEmail("duplicate_user")
		registerReq := map[string]string{
			"email":    email,
			"password": "Test1234",
			"name":     "重复用户",
		}

		resp1 := PostJSON(t, BaseURL+"/users/register", registerReq, "")
		require.Equal(t, 0, resp1.Code, "第一次注册应该成功")

		resp2 := PostJSON(t, BaseURL+"/users/register", registerReq, "")
		assert.Equal(t, 40003, resp2.Code, "重复邮箱应该返回冲突错误码")

		t.Logf("✓ 重复邮箱正确被拒绝: %s", resp2.Message)
	})

	t.Run("非法邮箱格式应失败", func(t *testing.T) {
		registerReq := map[string]string{
			"email":    "not-an-email",
			"password": "Test1234",
			"name":     "格式用户",
		}

		resp := PostJSON(t, BaseURL+"/users/register", registerReq, "")

		assert.NotEqual(t, 0, resp.Code, "非法邮箱应该失败")

		t.Logf("✓ 非法邮箱正确被拒绝: %s", resp.Message)
	})

	t.Run("弱密码应失败", func(t *testing.T) {
		registerReq := map[string]string{
			"email":    GenerateTestEmail("weak_pwd"),
			"password": "12345678", // 纯数字,不含字母
			"name":     "弱密码用户",
		}

		resp := PostJSON(t, BaseURL+"/users/register", registerReq, "")

		assert.NotEqual(t, 0, resp.Code, "纯数字密码应该失败")

		t.Logf("✓ 弱密码正确被拒绝: %s", resp.Message)
	})
}

// TestUserLogin 测试用户登录功能
func TestUserLogin(t *testing.T) {
	RequireServer(t)

	_, email := RegisterTestUser(t, "login_user")

	t.Run("正常登录", func(t *testing.T) {
		loginReq := map[string]string{
			"email":    email,
			"password": "Test1234",
		}

		resp := PostJSON(t, BaseURL+"/users/login", loginReq, "")

		require.Equal(t, 0, resp.Code, "登录应该成功: %s", resp.Message)

		var data LoginData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err, "解析登录响应失败")

		assert.NotEmpty(t, data.AccessToken, "应该返回访问令牌")
		assert.NotEmpty(t, data.RefreshToken, "应该返回刷新令牌")

		t.Logf("✓ 登录成功，获得Token")
	})

	t.Run("密码错误应失败", func(t *testing.T) {
		loginReq := map[string]string{
			"email":    email,
			"password": "WrongPwd1",
		}

		resp := PostJSON(t, BaseURL+"/users/login", loginReq, "")

		assert.Equal(t, 40103, resp.Code, "密码错误应该返回认证错误码")

		t.Logf("✓ 错误密码正确被拒绝: %s", resp.Message)
	})

	t.Run("邮箱不存在应失败", func(t *testing.T) {
		loginReq := map[string]string{
			"email":    GenerateTestEmail("nobody"),
			"password": "Test1234",
		}

		resp := PostJSON(t, BaseURL+"/users/login", loginReq, "")

		assert.Equal(t, 40401, resp.Code, "不存在的邮箱应该返回404错误码")

		t.Logf("✓ 不存在的邮箱正确返回: %s", resp.Message)
	})
}

// TestUserGet 测试借阅人档案查询
func TestUserGet(t *testing.T) {
	RequireServer(t)

	userID, email := RegisterTestUser(t, "profile_user")

	t.Run("查询借阅人档案", func(t *testing.T) {
		resp := GetJSON(t, fmt.Sprintf("%s/users/%d", BaseURL, userID), "")

		require.Equal(t, 0, resp.Code, "查询应该成功: %s", resp.Message)

		var data RegisterData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err)

		assert.Equal(t, userID, data.ID)
		assert.Equal(t, email, data.Email)

		t.Logf("✓ 档案查询成功: %s", data.Email)
	})

	t.Run("查询不存在的借阅人", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/users/999999999", "")

		assert.Equal(t, 40401, resp.Code, "不存在的用户应该返回404错误码")

		t.Logf("✓ 不存在的用户正确返回: %s", resp.Message)
	})
}

// TestAuthMiddleware 测试认证中间件
func TestAuthMiddleware(t *testing.T) {
	RequireServer(t)

	_, email := RegisterTestUser(t, "auth_user")
	token := LoginTestUser(t, email)

	t.Run("携带Token访问受保护接口", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/profile", token)

		assert.Equal(t, 0, resp.Code, "携带有效Token应该成功: %s", resp.Message)

		t.Logf("✓ 认证通过")
	})

	t.Run("无Token访问受保护接口", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/profile", "")

		assert.NotEqual(t, 0, resp.Code, "无Token应该被拒绝")

		t.Logf("✓ 无Token正确被拒绝: %s", resp.Message)
	})

	t.Run("非法Token访问受保护接口", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/profile", "invalid.token.here")

		assert.NotEqual(t, 0, resp.Code, "非法Token应该被拒绝")

		t.Logf("✓ 非法Token正确被拒绝: %s", resp.Message)
	})
}
