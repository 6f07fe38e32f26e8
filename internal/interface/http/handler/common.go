package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookcatalog/pkg/response"
)

// parseIDParam 解析路径中的数字ID
// 解析失败时直接写出40900响应并返回ok=false,调用方只需return
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.ErrorWithCode(c, 40900, "参数错误: "+name+"必须是正整数")
		return 0, false
	}
	return uint(id), true
}
