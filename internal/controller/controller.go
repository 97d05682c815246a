package controller

import (
	"strconv"

	"online_exam_backend/internal/service"
	"online_exam_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// principal 从请求上下文取当前用户，AuthMiddleware 保证已注入
func principal(ctx *gin.Context) (service.Principal, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return service.Principal{}, false
	}
	return service.PrincipalFromClaims(claims), true
}

// pathID 解析路径中的数字ID参数
func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
