package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// 教学说明：图书Handler单元测试
//
// 用httptest直接驱动gin路由,不依赖运行中的服务
// 重点覆盖HTTP边界的参数校验:binding只拦截格式问题,
// 业务规则(空串合法、年份范围)由领域层裁决

// envelope 统一响应包
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// bookPayload 响应中的图书数据
type bookPayload struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Description   string `json:"description"`
	PublishedYear int    `json:"published_year"`
}

// newBookRouter 构造只挂图书路由的测试引擎(memory存储)
func newBookRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	metrics.InitMetrics()

	store := memory.NewStore()
	svc := book.NewService(memory.NewBookRepository(store), store)

	h := handler.NewBookHandler(
		appbook.NewCreateBookUseCase(svc),
		appbook.NewGetBookUseCase(svc),
		appbook.NewListBooksUseCase(svc),
		appbook.NewSearchBooksUseCase(svc),
		appbook.NewSortBooksUseCase(svc),
		appbook.NewUpdateBookUseCase(svc),
		appbook.NewPatchBookUseCase(svc),
		appbook.NewDeleteBookUseCase(svc),
	)

	r := gin.New()
	r.POST("/api/v1/books", h.CreateBook)
	r.GET("/api/v1/books/:id", h.GetBook)
	r.PUT("/api/v1/books/:id", h.UpdateBook)
	return r
}

// doJSON 发送JSON请求并解析统一响应包
func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (int, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w.Code, env
}

// TestBookCreateBinding 测试登记请求的HTTP边界校验
func TestBookCreateBinding(t *testing.T) {
	t.Run("空串字段可以登记", func(t *testing.T) {
		r := newBookRouter(t)

		status, env := doJSON(t, r, http.MethodPost, "/api/v1/books",
			`{"id":1,"title":"","author":"","description":"","published_year":2020}`)

		require.Equal(t, http.StatusCreated, status, "空串是合法值,不应该在binding层被拦截")
		require.Equal(t, 0, env.Code)

		var b bookPayload
		require.NoError(t, json.Unmarshal(env.Data, &b))
		assert.Equal(t, uint(1), b.ID)
		assert.Empty(t, b.Title)
		assert.Empty(t, b.Author)
		assert.Equal(t, 2020, b.PublishedYear)

		t.Logf("✓ 空串字段登记成功，图书ID: %d", b.ID)
	})

	t.Run("缺少编号被拒绝", func(t *testing.T) {
		r := newBookRouter(t)

		status, env := doJSON(t, r, http.MethodPost, "/api/v1/books",
			`{"title":"围城","author":"钱锺书","published_year":1947}`)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, 40900, env.Code)

		t.Logf("✓ 缺少编号正确被拒绝: %s", env.Message)
	})

	t.Run("超长书名被拒绝", func(t *testing.T) {
		r := newBookRouter(t)

		longTitle := strings.Repeat("a", 250)
		status, env := doJSON(t, r, http.MethodPost, "/api/v1/books",
			`{"id":2,"title":"`+longTitle+`","author":"测试作者","published_year":2020}`)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, 40900, env.Code)

		t.Logf("✓ 超长书名正确被拒绝")
	})
}

// TestBookUpdateBinding 测试全量更新请求的HTTP边界校验
func TestBookUpdateBinding(t *testing.T) {
	t.Run("空串字段可以覆盖原值", func(t *testing.T) {
		r := newBookRouter(t)

		status, _ := doJSON(t, r, http.MethodPost, "/api/v1/books",
			`{"id":1,"title":"围城","author":"钱锺书","description":"长篇小说","published_year":1947}`)
		require.Equal(t, http.StatusCreated, status)

		status, env := doJSON(t, r, http.MethodPut, "/api/v1/books/1",
			`{"title":"","author":"","description":"","published_year":1947}`)

		require.Equal(t, http.StatusOK, status, "PUT语义下空串覆盖原值,不应该在binding层被拦截")
		require.Equal(t, 0, env.Code)

		var b bookPayload
		require.NoError(t, json.Unmarshal(env.Data, &b))
		assert.Empty(t, b.Title)
		assert.Empty(t, b.Author)
		assert.Empty(t, b.Description)

		t.Logf("✓ 空串覆盖更新成功")
	})
}
