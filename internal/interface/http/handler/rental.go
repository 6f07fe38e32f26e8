package handler

import (
	"github.com/gin-gonic/gin"

	apprental "github.com/xiebiao/bookcatalog/internal/application/rental"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// RentalHandler 借阅HTTP处理器
type RentalHandler struct {
	rentBookUseCase    *apprental.RentBookUseCase
	returnBookUseCase  *apprental.ReturnBookUseCase
	getRentalUseCase   *apprental.GetRentalUseCase
	listRentalsUseCase *apprental.ListRentalsUseCase
}

// NewRentalHandler 创建借阅处理器
func NewRentalHandler(
	rentBookUseCase *apprental.RentBookUseCase,
	returnBookUseCase *apprental.ReturnBookUseCase,
	getRentalUseCase *apprental.GetRentalUseCase,
	listRentalsUseCase *apprental.ListRentalsUseCase,
) *RentalHandler {
	return &RentalHandler{
		rentBookUseCase:    rentBookUseCase,
		returnBookUseCase:  returnBookUseCase,
		getRentalUseCase:   getRentalUseCase,
		listRentalsUseCase: listRentalsUseCase,
	}
}

// RentBook 借书
// @Summary      借书
// @Description  为指定用户借出指定图书;一本书同时最多一条在借记录
// @Tags         借阅
// @Accept       json
// @Produce      json
// @Param        request body dto.RentBookRequest true "借书信息"
// @Success      201 {object} response.Response{data=dto.RentalResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "用户或图书不存在"
// @Failure      409 {object} response.Response "图书已被借出"
// @Router       /api/v1/rentals [post]
func (h *RentalHandler) RentBook(c *gin.Context) {
	var req dto.RentBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.rentBookUseCase.Execute(c.Request.Context(), apprental.RentBookRequest{
		UserID: req.UserID,
		BookID: req.BookID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toRentalResponse(result))
}

// ReturnBook 还书
// @Summary      还书
// @Description  归还指定借阅记录;重复归还是幂等操作
// @Tags         借阅
// @Produce      json
// @Param        id path int true "借阅记录ID"
// @Success      200 {object} response.Response{data=dto.RentalResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "借阅记录不存在"
// @Router       /api/v1/rentals/{id}/return [post]
func (h *RentalHandler) ReturnBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.returnBookUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toRentalResponse(result))
}

// GetRental 借阅记录详情
// @Summary      借阅记录详情
// @Tags         借阅
// @Produce      json
// @Param        id path int true "借阅记录ID"
// @Success      200 {object} response.Response{data=dto.RentalResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "借阅记录不存在"
// @Router       /api/v1/rentals/{id} [get]
func (h *RentalHandler) GetRental(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.getRentalUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toRentalResponse(result))
}

// ListRentals 借阅记录列表
// @Summary      借阅记录列表
// @Description  返回全部借阅记录,可按user_id过滤
// @Tags         借阅
// @Produce      json
// @Param        user_id query int false "借阅人ID"
// @Success      200 {object} response.Response{data=[]dto.RentalResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/rentals [get]
func (h *RentalHandler) ListRentals(c *gin.Context) {
	var req dto.ListRentalsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.listRentalsUseCase.Execute(c.Request.Context(), apprental.ListRentalsRequest{
		UserID: req.UserID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toRentalResponses(result))
}

// toRentalResponse 应用层DTO转HTTP响应
func toRentalResponse(v *apprental.RentalView) *dto.RentalResponse {
	return &dto.RentalResponse{
		ID:         v.ID,
		UserID:     v.UserID,
		BookID:     v.BookID,
		Returned:   v.Returned,
		RentedAt:   v.RentedAt,
		ReturnedAt: v.ReturnedAt,
	}
}

// toRentalResponses 批量转换
func toRentalResponses(views []*apprental.RentalView) []*dto.RentalResponse {
	responses := make([]*dto.RentalResponse, len(views))
	for i, v := range views {
		responses[i] = toRentalResponse(v)
	}
	return responses
}
