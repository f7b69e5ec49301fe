package handler

import (
	"net/http"

	"Pointly/config"
	"Pointly/middleware"
	"Pointly/pkg/context"
	"Pointly/pkg/response"
	"Pointly/service"
	"Pointly/types"

	"github.com/gin-gonic/gin"
)

type Card struct {
	Config      *config.Config
	CardService service.ICardService
}

func (h *Card) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))

	g := r.Group("/v1/cards")
	g.Use(authorize)
	g.POST("/redeem", context.Wrap(h.Redeem))

	admin := r.Group("/v1/admin/cards")
	admin.Use(authorize, middleware.AdminOnly())
	admin.POST("", context.Wrap(h.Create))
	admin.GET("", context.Wrap(h.List))
	admin.GET("/:card_no", context.Wrap(h.Detail))
}

// Redeem 兑换一张卡。已兑换和不存在要给前端两种不同的报错。
func (h *Card) Redeem(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	var req types.RedeemCardReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(40001, "参数格式错误")
	}

	entry, err := h.CardService.RedeemCard(c.Request.Context(), req.CardNo, userID)
	if err != nil {
		return err
	}
	response.Success(c, entry)
	return nil
}

// Create 批量制卡
func (h *Card) Create(c *gin.Context) error {
	var req types.CreateCardsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(40001, "参数格式错误")
	}

	cards, err := h.CardService.CreateCards(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	response.Success(c, cards)
	return nil
}

func (h *Card) List(c *gin.Context) error {
	var req types.ListCardsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return response.NewError(40001, "参数格式错误")
	}

	page, err := h.CardService.ListCards(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	response.Success(c, page)
	return nil
}

func (h *Card) Detail(c *gin.Context) error {
	card, err := h.CardService.GetCard(c.Request.Context(), c.Param("card_no"))
	if err != nil {
		return err
	}
	response.Success(c, card)
	return nil
}
