package handler

import (
	"Pointly/config"
	"Pointly/middleware"
	"Pointly/pkg/context"
	"Pointly/pkg/response"
	"Pointly/service"
	"Pointly/types"

	"github.com/gin-gonic/gin"
)

type User struct {
	Config      *config.Config
	UserService service.IUserService
}

func (h *User) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))

	admin := r.Group("/v1/admin/users")
	admin.Use(authorize, middleware.AdminOnly())
	admin.GET("", context.Wrap(h.List))
}

// List 用户列表，带积分账户概览
func (h *User) List(c *gin.Context) error {
	var req types.ListUsersReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return response.NewError(40001, "参数格式错误")
	}

	page, err := h.UserService.ListUsers(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	response.Success(c, page)
	return nil
}
