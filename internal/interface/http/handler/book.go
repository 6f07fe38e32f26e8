package handler

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// BookHandler 图书HTTP处理器
// 设计说明:
// 1. Handler只负责HTTP相关的事情:解析请求、调用应用层、返回响应
// 2. 不包含业务逻辑(业务逻辑在domain和application层)
// 3. 使用依赖注入,便于测试
type BookHandler struct {
	createBookUseCase  *appbook.CreateBookUseCase
	getBookUseCase     *appbook.GetBookUseCase
	listBooksUseCase   *appbook.ListBooksUseCase
	searchBooksUseCase *appbook.SearchBooksUseCase
	sortBooksUseCase   *appbook.SortBooksUseCase
	updateBookUseCase  *appbook.UpdateBookUseCase
	patchBookUseCase   *appbook.PatchBookUseCase
	deleteBookUseCase  *appbook.DeleteBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	createBookUseCase *appbook.CreateBookUseCase,
	getBookUseCase *appbook.GetBookUseCase,
	listBooksUseCase *appbook.ListBooksUseCase,
	searchBooksUseCase *appbook.SearchBooksUseCase,
	sortBooksUseCase *appbook.SortBooksUseCase,
	updateBookUseCase *appbook.UpdateBookUseCase,
	patchBookUseCase *appbook.PatchBookUseCase,
	deleteBookUseCase *appbook.DeleteBookUseCase,
) *BookHandler {
	return &BookHandler{
		createBookUseCase:  createBookUseCase,
		getBookUseCase:     getBookUseCase,
		listBooksUseCase:   listBooksUseCase,
		searchBooksUseCase: searchBooksUseCase,
		sortBooksUseCase:   sortBooksUseCase,
		updateBookUseCase:  updateBookUseCase,
		patchBookUseCase:   patchBookUseCase,
		deleteBookUseCase:  deleteBookUseCase,
	}
}

// CreateBook 登记图书
// @Summary      登记图书
// @Description  登记一本新书,ID由调用方指定
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      201 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      409 {object} response.Response "ID已存在"
// @Router       /api/v1/books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	// 1. 参数绑定与验证
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	// 2. 调用应用层用例
	result, err := h.createBookUseCase.Execute(c.Request.Context(), appbook.CreateBookRequest{
		ID:            req.ID,
		Title:         req.Title,
		Author:        req.Author,
		Description:   req.Description,
		PublishedYear: req.PublishedYear,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	// 3. 构建HTTP响应(新建资源返回201)
	response.Created(c, toBookResponse(result))
}

// GetBook 图书详情
// @Summary      图书详情
// @Description  根据ID查询一本图书
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.getBookUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookResponse(result))
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  返回全部图书;带sort_by/order参数时按指定字段排序,否则按登记顺序
// @Tags         图书
// @Produce      json
// @Param        sort_by query string false "排序字段(title/author/published_year)"
// @Param        order query string false "排序方向(asc/desc)"
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Failure      400 {object} response.Response "排序参数非法"
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	// 出现任一排序参数即走排序分支
	// 只给其中一个时另一个为空串,由领域层拒绝(不做静默回退)
	sortBy := c.Query("sort_by")
	order := c.Query("order")

	var (
		result []*appbook.BookView
		err    error
	)
	if sortBy != "" || order != "" {
		result, err = h.sortBooksUseCase.Execute(c.Request.Context(), appbook.SortBooksRequest{
			Field: sortBy,
			Order: order,
		})
	} else {
		result, err = h.listBooksUseCase.Execute(c.Request.Context())
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookResponses(result))
}

// SearchBooks 图书检索
// @Summary      图书检索
// @Description  按title/author/published_year精确匹配,多条件AND;无条件时返回全部
// @Tags         图书
// @Produce      json
// @Param        title query string false "书名(精确匹配)"
// @Param        author query string false "作者(精确匹配)"
// @Param        published_year query int false "出版年份(精确匹配)"
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/books/search [get]
func (h *BookHandler) SearchBooks(c *gin.Context) {
	var req dto.SearchBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.searchBooksUseCase.Execute(c.Request.Context(), appbook.SearchBooksRequest{
		Title:         req.Title,
		Author:        req.Author,
		PublishedYear: req.PublishedYear,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookResponses(result))
}

// UpdateBook 全量更新图书(PUT语义)
// @Summary      全量更新图书
// @Description  用请求体完整替换图书信息,路径ID为权威ID
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        id path int true "图书ID"
// @Param        request body dto.UpdateBookRequest true "图书信息"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.updateBookUseCase.Execute(c.Request.Context(), appbook.UpdateBookRequest{
		ID:            id,
		Title:         req.Title,
		Author:        req.Author,
		Description:   req.Description,
		PublishedYear: req.PublishedYear,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookResponse(result))
}

// PatchBook 部分更新图书(PATCH语义)
// @Summary      部分更新图书
// @Description  只更新请求体中出现的字段;未知字段和空请求体都会被拒绝
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        id path int true "图书ID"
// @Param        request body dto.PatchBookRequest true "要更新的字段"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [patch]
func (h *BookHandler) PatchBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	// 严格解析:未知字段直接拒绝,避免客户端字段拼写错误被当作"不更新"静默吞掉
	var req dto.PatchBookRequest
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.patchBookUseCase.Execute(c.Request.Context(), appbook.PatchBookRequest{
		ID:            id,
		Title:         req.Title,
		Author:        req.Author,
		Description:   req.Description,
		PublishedYear: req.PublishedYear,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookResponse(result))
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Description  根据ID删除一本图书
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.deleteBookUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// toBookResponse 应用层DTO转HTTP响应
func toBookResponse(v *appbook.BookView) *dto.BookResponse {
	return &dto.BookResponse{
		ID:            v.ID,
		Title:         v.Title,
		Author:        v.Author,
		Description:   v.Description,
		PublishedYear: v.PublishedYear,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

// toBookResponses 批量转换
func toBookResponses(views []*appbook.BookView) []*dto.BookResponse {
	responses := make([]*dto.BookResponse, len(views))
	for i, v := range views {
		responses[i] = toBookResponse(v)
	}
	return responses
}
