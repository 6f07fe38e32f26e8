package handler

import (
	"github.com/gin-gonic/gin"

	appcategory "github.com/xiebiao/bookcatalog/internal/application/category"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// CategoryHandler 分类HTTP处理器
type CategoryHandler struct {
	createCategoryUseCase     *appcategory.CreateCategoryUseCase
	listCategoriesUseCase     *appcategory.ListCategoriesUseCase
	assignCategoryUseCase     *appcategory.AssignCategoryUseCase
	removeCategoryUseCase     *appcategory.RemoveCategoryUseCase
	listBookCategoriesUseCase *appcategory.ListBookCategoriesUseCase
}

// NewCategoryHandler 创建分类处理器
func NewCategoryHandler(
	createCategoryUseCase *appcategory.CreateCategoryUseCase,
	listCategoriesUseCase *appcategory.ListCategoriesUseCase,
	assignCategoryUseCase *appcategory.AssignCategoryUseCase,
	removeCategoryUseCase *appcategory.RemoveCategoryUseCase,
	listBookCategoriesUseCase *appcategory.ListBookCategoriesUseCase,
) *CategoryHandler {
	return &CategoryHandler{
		createCategoryUseCase:     createCategoryUseCase,
		listCategoriesUseCase:     listCategoriesUseCase,
		assignCategoryUseCase:     assignCategoryUseCase,
		removeCategoryUseCase:     removeCategoryUseCase,
		listBookCategoriesUseCase: listBookCategoriesUseCase,
	}
}

// CreateCategory 创建分类
// @Summary      创建分类
// @Description  创建一个新分类,分类名全局唯一
// @Tags         分类
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateCategoryRequest true "分类信息"
// @Success      201 {object} response.Response{data=dto.CategoryResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      409 {object} response.Response "分类名已存在"
// @Router       /api/v1/categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.createCategoryUseCase.Execute(c.Request.Context(), appcategory.CreateCategoryRequest{
		Name: req.Name,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toCategoryResponse(result))
}

// ListCategories 分类列表
// @Summary      分类列表
// @Tags         分类
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.CategoryResponse}
// @Router       /api/v1/categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	result, err := h.listCategoriesUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toCategoryResponses(result))
}

// AssignCategory 图书打标
// @Summary      图书打标
// @Description  为图书关联一个分类;重复打标是幂等操作
// @Tags         分类
// @Accept       json
// @Produce      json
// @Param        id path int true "图书ID"
// @Param        request body dto.AssignCategoryRequest true "分类ID"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "图书或分类不存在"
// @Router       /api/v1/books/{id}/categories [post]
func (h *CategoryHandler) AssignCategory(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.AssignCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	if err := h.assignCategoryUseCase.Execute(c.Request.Context(), bookID, req.CategoryID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// RemoveCategory 图书去标
// @Summary      图书去标
// @Description  移除图书与分类的关联;移除不存在的关联是幂等操作
// @Tags         分类
// @Produce      json
// @Param        id path int true "图书ID"
// @Param        categoryID path int true "分类ID"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "图书或分类不存在"
// @Router       /api/v1/books/{id}/categories/{categoryID} [delete]
func (h *CategoryHandler) RemoveCategory(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	categoryID, ok := parseIDParam(c, "categoryID")
	if !ok {
		return
	}

	if err := h.removeCategoryUseCase.Execute(c.Request.Context(), bookID, categoryID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// ListBookCategories 图书分类列表
// @Summary      图书分类列表
// @Description  返回指定图书的全部分类,按打标顺序排列
// @Tags         分类
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=[]dto.CategoryResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id}/categories [get]
func (h *CategoryHandler) ListBookCategories(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.listBookCategoriesUseCase.Execute(c.Request.Context(), bookID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toCategoryResponses(result))
}

// toCategoryResponse 应用层DTO转HTTP响应
func toCategoryResponse(v *appcategory.CategoryView) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:        v.ID,
		Name:      v.Name,
		CreatedAt: v.CreatedAt,
	}
}

// toCategoryResponses 批量转换
func toCategoryResponses(views []*appcategory.CategoryView) []*dto.CategoryResponse {
	responses := make([]*dto.CategoryResponse, len(views))
	for i, v := range views {
		responses[i] = toCategoryResponse(v)
	}
	return responses
}
