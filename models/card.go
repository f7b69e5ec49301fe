package models

import "time"

// ExchangeCard 兑换卡，一次性积分充值券
type ExchangeCard struct {
	ID         int64      `gorm:"primaryKey;column:id"`
	CardNo     string     `gorm:"column:card_no;uniqueIndex;size:64"` // 卡号
	Name       string     `gorm:"column:name;size:120"`               // 展示名称
	Points     int64      `gorm:"column:points"`                      // 面值积分
	Consumed   bool       `gorm:"column:consumed;index;default:false"`
	RedeemedBy *int64     `gorm:"column:redeemed_by;index"` // 兑换用户
	RedeemedAt *time.Time `gorm:"column:redeemed_at"`       // 兑换时间
	Note       string     `gorm:"column:note;size:255"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (ExchangeCard) TableName() string {
	return "exchange_cards"
}

// MarkRedeemed 把卡置为已兑换。已兑换的卡是终态，重复调用直接报错。
func (c *ExchangeCard) MarkRedeemed(userID int64, now time.Time) error {
	if c.Consumed {
		return ErrCardAlreadyRedeemed
	}
	c.Consumed = true
	c.RedeemedBy = &userID
	c.RedeemedAt = &now
	return nil
}
