package types

// RedeemCardReq 兑换请求体
type RedeemCardReq struct {
	CardNo string `json:"card_no" binding:"required"`
}

// CreateCardsReq 批量制卡请求体
type CreateCardsReq struct {
	Name   string `json:"name" binding:"required"`            // 展示名称
	Points int64  `json:"points" binding:"required,gt=0"`     // 面值积分
	Count  int    `json:"count" binding:"required,gte=1,lte=1000"`
	Note   string `json:"note"`
}

// ExchangeCard 兑换卡的对外形态
type ExchangeCard struct {
	ID         int64  `json:"id"`
	CardNo     string `json:"card_no"`
	Name       string `json:"name"`
	Points     int64  `json:"points"`
	Consumed   bool   `json:"consumed"`
	RedeemedBy *int64 `json:"redeemed_by,omitempty"`
	RedeemedAt string `json:"redeemed_at,omitempty"`
	Note       string `json:"note,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// ListCardsReq 卡列表筛选请求
type ListCardsReq struct {
	Consumed *bool  `form:"consumed"`
	Search   string `form:"search"`
	Limit    int    `form:"limit,default=20"`
	Offset   int    `form:"offset"`
}

// CardPage 卡列表分页包装
type CardPage struct {
	Cards []ExchangeCard `json:"cards"`
	Total int64          `json:"total"`
}
