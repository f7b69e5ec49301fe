package handler

import (
	"net/http"

	"Pointly/config"
	"Pointly/dao/cache"
	"Pointly/middleware"
	"Pointly/pkg/context"
	"Pointly/pkg/log"
	"Pointly/pkg/response"
	"Pointly/service"
	"Pointly/types"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Point struct {
	Config       *config.Config
	PointService service.IPointService
	QueryService service.IQueryService
	StatsCache   *cache.StatsCache
}

func (h *Point) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))

	g := r.Group("/v1/points")
	g.Use(authorize)
	g.GET("/balance", context.Wrap(h.Balance))
	g.GET("/account", context.Wrap(h.Account))
	g.GET("/history", context.Wrap(h.History))

	admin := r.Group("/v1/admin/points")
	admin.Use(authorize, middleware.AdminOnly())
	admin.POST("/adjust", context.Wrap(h.Adjust))
	admin.GET("/logs", context.Wrap(h.ListLogs))
	admin.GET("/statistics", context.Wrap(h.Statistics))
}

func (h *Point) Balance(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	balance, err := h.PointService.GetBalance(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	response.Success(c, gin.H{"balance": balance})
	return nil
}

func (h *Point) Account(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	account, err := h.PointService.GetAccount(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	response.Success(c, account)
	return nil
}

// History 当前用户的流水，exchange / usage 两个方向各自分页
func (h *Point) History(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
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

// Adjust 管理员手工调整积分
func (h *Point) Adjust(c *gin.Context) error {
	var req types.AppendEntryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(40001, "参数格式错误")
	}

	entry, err := h.PointService.AppendEntry(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	response.Success(c, entry)
	return nil
}

func (h *Point) ListLogs(c *gin.Context) error {
	var req types.ListEntriesReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return response.NewError(40001, "参数格式错误")
	}

	page, err := h.PointService.ListEntries(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	response.Success(c, page)
	return nil
}

// Statistics 全局统计。redis 里放一个 30 秒的快照给看板轮询用，
// 统计本身永远以数据库现算为准。
func (h *Point) Statistics(c *gin.Context) error {
	ctx := c.Request.Context()

	var cached types.PointsStatistics
	hit, err := h.StatsCache.Get(ctx, &cached)
	if err != nil {
		// 缓存故障只记日志，不影响主链路
		log.L.Warn("stats cache get failed", zap.Error(err))
	}
	if hit {
		response.Success(c, &cached)
		return nil
	}

	stats, err := h.PointService.GetAggregateStats(ctx)
	if err != nil {
		return err
	}
	if err := h.StatsCache.Set(ctx, stats); err != nil {
		log.L.Warn("stats cache set failed", zap.Error(err))
	}
	response.Success(c, stats)
	return nil
}
