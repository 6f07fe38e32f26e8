package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 教学说明：测试辅助工具
// 这个文件包含集成测试的通用辅助函数，遵循DRY原则（Don't Repeat Yourself）
// 将重复的代码（HTTP请求、JSON解析）封装成可复用的函数

const (
	// BaseURL API基础URL
	BaseURL = "http://localhost:8080/api/v1"
	// PingURL 健康检查URL
	PingURL = "http://localhost:8080/ping"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// RegisterData 注册响应数据
type RegisterData struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// LoginData 登录响应数据
type LoginData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// BookData 图书响应数据
type BookData struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Description   string `json:"description"`
	PublishedYear int    `json:"published_year"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// RentalData 借阅响应数据
type RentalData struct {
	ID         uint   `json:"id"`
	UserID     uint   `json:"user_id"`
	BookID     uint   `json:"book_id"`
	Returned   bool   `json:"returned"`
	RentedAt   string `json:"rented_at"`
	ReturnedAt string `json:"returned_at"`
}

// CategoryData 分类响应数据
type CategoryData struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

// RequireServer 检查API服务是否在运行
//
// 教学说明：
// 集成测试依赖已启动的服务进程，
// 服务不可达时跳过而不是失败，保证`go test ./...`在任意环境都能跑通
func RequireServer(t *testing.T) {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(PingURL)
	if err != nil {
		t.Skipf("API服务不可用，跳过集成测试: %v", err)
	}
	resp.Body.Close()
}

// DoJSON 发送HTTP请求并解析JSON响应
//
// 教学说明：
// - 使用*testing.T参数，可以在失败时立即终止测试
// - 使用require包进行断言，失败会立即停止（不继续执行）
// - 返回*Response而非error，简化调用方代码
func DoJSON(t *testing.T, method, url string, data interface{}, token string) *Response {
	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	err = json.Unmarshal(respBody, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(respBody))

	return &result
}

// PostJSON 发送POST请求并解析JSON响应
func PostJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return DoJSON(t, "POST", url, data, token)
}

// GetJSON 发送GET请求并解析JSON响应
func GetJSON(t *testing.T, url string, token string) *Response {
	return DoJSON(t, "GET", url, nil, token)
}

// PutJSON 发送PUT请求并解析JSON响应
func PutJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return DoJSON(t, "PUT", url, data, token)
}

// PatchJSON 发送PATCH请求并解析JSON响应
func PatchJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return DoJSON(t, "PATCH", url, data, token)
}

// DeleteJSON 发送DELETE请求并解析JSON响应
func DeleteJSON(t *testing.T, url string, token string) *Response {
	return DoJSON(t, "DELETE", url, nil, token)
}

// GenerateTestEmail 生成唯一的测试邮箱
//
// 教学说明：
// 使用时间戳确保邮箱唯一性，避免测试重复运行时邮箱冲突
// 确保邮箱格式正确（包含@和域名）
func GenerateTestEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@test.com", prefix, time.Now().UnixNano())
}

var bookIDSeq uint64

// GenerateTestBookID 生成唯一的图书ID
//
// 教学说明：
// 图书ID由调用方指定，测试需要保证不和已有图书冲突
// 时间戳提供跨测试进程的唯一性，原子计数器提供进程内的唯一性
func GenerateTestBookID() uint {
	seq := atomic.AddUint64(&bookIDSeq, 1)
	return uint(time.Now().UnixNano()%1_000_000_000)*1000 + uint(seq%1000)
}

// RegisterTestUser 注册测试用户并返回用户ID
//
// 教学说明：
// 这是一个"高阶"辅助函数，封装了注册流程
// 简化了测试代码，让测试更关注业务逻辑而非基础设施
func RegisterTestUser(t *testing.T, name string) (userID uint, email string) {
	email = GenerateTestEmail(name)
	registerReq := map[string]string{
		"email":    email,
		"password": "Test1234",
		"name":     name,
		"phone":    "13800138000",
	}

	registerResp := PostJSON(t, BaseURL+"/users/register", registerReq, "")
	require.Equal(t, 0, registerResp.Code, "注册失败: %s", registerResp.Message)

	var registerData RegisterData
	err := json.Unmarshal(registerResp.Data, &registerData)
	require.NoError(t, err, "解析注册响应失败")

	return registerData.ID, email
}

// LoginTestUser 登录测试用户并返回Token
func LoginTestUser(t *testing.T, email string) string {
	loginReq := map[string]string{
		"email":    email,
		"password": "Test1234",
	}

	loginResp := PostJSON(t, BaseURL+"/users/login", loginReq, "")
	require.Equal(t, 0, loginResp.Code, "登录失败: %s", loginResp.Message)

	var loginData LoginData
	err := json.Unmarshal(loginResp.Data, &loginData)
	require.NoError(t, err, "解析登录响应失败")

	return loginData.AccessToken
}

// CreateTestBook 登记测试图书并返回图书ID
//
// 教学说明：
// 封装了图书登记流程，返回bookID供后续测试使用
func CreateTestBook(t *testing.T, title string) uint {
	bookID := GenerateTestBookID()
	bookReq := map[string]interface{}{
		"id":             bookID,
		"title":          title,
		"author":         "测试作者",
		"description":    "集成测试用图书",
		"published_year": 2023,
	}

	bookResp := PostJSON(t, BaseURL+"/books", bookReq, "")
	require.Equal(t, 0, bookResp.Code, "图书登记失败: %s", bookResp.Message)

	var bookData BookData
	err := json.Unmarshal(bookResp.Data, &bookData)
	require.NoError(t, err, "解析图书响应失败")

	return bookData.ID
}

// RentTestBook 借出测试图书并返回借阅ID
func RentTestBook(t *testing.T, userID, bookID uint) uint {
	rentReq := map[string]interface{}{
		"user_id": userID,
		"book_id": bookID,
	}

	rentResp := PostJSON(t, BaseURL+"/rentals", rentReq, "")
	require.Equal(t, 0, rentResp.Code, "借书失败: %s", rentResp.Message)

	var rentalData RentalData
	err := json.Unmarshal(rentResp.Data, &rentalData)
	require.NoError(t, err, "解析借阅响应失败")

	return rentalData.ID
}
