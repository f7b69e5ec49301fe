package handler

import (
	"strconv"

	"Pointly/config"
	"Pointly/middleware"
	"Pointly/pkg/context"
	"Pointly/pkg/response"
	"Pointly/service"
	"Pointly/types"

	"github.com/gin-gonic/gin"
)

// Query 管理端看板的只读视图
type Query struct {
	Config       *config.Config
	QueryService service.IQueryService
}

func (h *Query) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))

	admin := r.Group("/v1/admin")
	admin.Use(authorize, middleware.AdminOnly())
	admin.GET("/dashboard", context.Wrap(h.Dashboard))
	admin.GET("/points/recent-redemptions", context.Wrap(h.RecentRedemptions))
	admin.GET("/points/recent-consumption", context.Wrap(h.RecentConsumption))
	admin.GET("/points/top-consumers", context.Wrap(h.TopConsumers))
	admin.GET("/users/:id/history", context.Wrap(h.UserHistory))
}

func queryLimit(c *gin.Context) int {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return limit
}

func (h *Query) Dashboard(c *gin.Context) error {
	resp, err := h.QueryService.Dashboard(c.Request.Context())
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (h *Query) RecentRedemptions(c *gin.Context) error {
	entries, err := h.QueryService.RecentRedemptions(c.Request.Context(), queryLimit(c))
	if err != nil {
		return err
	}
	response.Success(c, entries)
	return nil
}

func (h *Query) RecentConsumption(c *gin.Context) error {
	entries, err := h.QueryService.RecentConsumption(c.Request.Context(), queryLimit(c))
	if err != nil {
		return err
	}
	response.Success(c, entries)
	return nil
}

func (h *Query) TopConsumers(c *gin.Context) error {
	ranks, err := h.QueryService.TopConsumers(c.Request.Context())
	if err != nil {
		return err
	}
	response.Success(c, ranks)
	return nil
}

// UserHistory 指定用户的流水，按方向拆分分页
func (h *Query) UserHistory(c *gin.Context) error {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || userID <= 0 {
		return response.NewError(40001, "用户 ID 不合法")
	}

	var req types.UserHistoryReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return response.NewError(40001, "参数格式错误")
	}

	page, err := h.QueryService.UserHistory(c.Request.Context(), userID, &req)
	if err != nil {
		return err
	}
	response.Success(c, page)
	return nil
}
