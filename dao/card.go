package dao

import (
	"context"
	"errors"
	"time"

	"Pointly/models"
	"Pointly/pkg/snowflake"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Card struct {
	Repo[models.ExchangeCard]
}

func NewCard(db *gorm.DB) *Card {
	return &Card{
		Repo: NewRepo[models.ExchangeCard](db),
	}
}

// CardFilter 兑换卡列表查询条件
type CardFilter struct {
	Consumed *bool  // nil 表示不限
	Search   string // 按名称或卡号模糊匹配
	Limit    int
	Offset   int
}

// Redeem 兑换一张卡：锁卡行 -> 校验 -> 条件更新置已兑换 -> 追加流水，
// 整体一个事务。同一张卡的并发兑换只会有一个赢家，其余拿到
// ErrCardAlreadyRedeemed。
func (c *Card) Redeem(ctx context.Context, cardNo string, userID int64) (*models.PointsLog, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var entry *models.PointsLog
	err := c.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var card models.ExchangeCard
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("card_no = ?", cardNo).
			First(&card).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrCardNotFound
			}
			return err
		}
		if card.Consumed {
			return models.ErrCardAlreadyRedeemed
		}

		// 同一用户对同一张卡至多一条兑换流水
		var dup int64
		err = tx.Model(&models.PointsLog{}).
			Where("user_id = ? AND kind = ? AND card_no = ?", userID, models.KindCardRedeem, cardNo).
			Count(&dup).Error
		if err != nil {
			return err
		}
		if dup > 0 {
			return models.ErrIneligibleUser
		}

		now := time.Now()
		if err := card.MarkRedeemed(userID, now); err != nil {
			return err
		}
		// 条件更新兜底：即使锁语义退化，也保证只有一个事务能翻转 consumed
		res := tx.Model(&models.ExchangeCard{}).
			Where("card_no = ? AND consumed = ?", cardNo, false).
			Updates(map[string]any{
				"consumed":    true,
				"redeemed_by": userID,
				"redeemed_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrCardAlreadyRedeemed
		}

		e, err := appendTx(tx, AppendParams{
			UserID: userID,
			Delta:  card.Points,
			Kind:   models.KindCardRedeem,
			Remark: "兑换卡：" + card.Name,
			CardNo: &card.CardNo,
		})
		if err != nil {
			// 兑换要求用户已存在，查不到账户按不符合条件处理
			if errors.Is(err, models.ErrUserNotFound) {
				return models.ErrIneligibleUser
			}
			return err
		}
		entry = e
		return nil
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return entry, nil
}

// CreateBatch 批量落库新卡
func (c *Card) CreateBatch(ctx context.Context, cards []*models.ExchangeCard) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	for _, card := range cards {
		if card.ID == 0 {
			card.ID = snowflake.GenID()
		}
	}
	return mapStoreErr(c.Db.WithContext(ctx).Create(&cards).Error)
}

// FindByNo 按卡号查询
func (c *Card) FindByNo(ctx context.Context, cardNo string) (*models.ExchangeCard, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	card, err := c.Repo.FindByWhere(ctx, "card_no = ?", cardNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrCardNotFound
		}
		return nil, mapStoreErr(err)
	}
	return card, nil
}

// ListCards 分页查询卡列表
func (c *Card) ListCards(ctx context.Context, f CardFilter) ([]models.ExchangeCard, int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := c.Db.WithContext(ctx).Model(&models.ExchangeCard{})
	if f.Consumed != nil {
		query = query.Where("consumed = ?", *f.Consumed)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		query = query.Where("name LIKE ? OR card_no LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, mapStoreErr(err)
	}

	var cards []models.ExchangeCard
	err := query.Order("created_at DESC").Limit(f.Limit).Offset(f.Offset).Find(&cards).Error
	if err != nil {
		return nil, 0, mapStoreErr(err)
	}
	return cards, total, nil
}
