package dao

import (
	"context"
	"errors"
	"strings"

	"Pointly/models"
	"Pointly/pkg/snowflake"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Point struct {
	Repo[models.PointsLog]
}

func NewPoint(db *gorm.DB) *Point {
	return &Point{
		Repo: NewRepo[models.PointsLog](db),
	}
}

// AppendParams 一次积分变动的全部输入
type AppendParams struct {
	UserID int64
	Delta  int64
	Kind   string
	Remark string
	TaskID *int64
	CardNo *string
}

// EntryFilter 流水查询条件。DeltaSign 把"按正负分流"下推到 SQL，
// 调用方不需要拉全量数据再在内存里过滤。
type EntryFilter struct {
	UserID    int64  // 0 表示不限用户
	Kind      string // 空表示不限类型
	DeltaSign int    // >0 只要入账，<0 只要支出，0 不限
	Search    string // 按备注模糊匹配，不区分大小写
	SortField string // 目前仅支持 created_at
	SortOrder string // asc / desc，默认 desc
	Limit     int
	Offset    int
}

// AggregateStats 全局积分统计
type AggregateStats struct {
	TotalRedeemed int64 `gorm:"column:total_redeemed"`
	TotalUsed     int64 `gorm:"column:total_used"`
	TotalUsers    int64 `gorm:"column:total_users"`
	ActiveUsers   int64 `gorm:"column:active_users"`
}

// ConsumerRank 消耗排行里的一行
type ConsumerRank struct {
	UserID     int64  `gorm:"column:user_id" json:"user_id"`
	Used       int64  `gorm:"column:used" json:"used"`
	LastUsedAt string `gorm:"column:last_used_at" json:"last_used_at"`
}

// Append 追加一条流水并同步账户余额，整体在一个事务里完成。
// 同一用户的并发追加靠账户行锁串行化。
func (p *Point) Append(ctx context.Context, params AppendParams) (*models.PointsLog, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var entry *models.PointsLog
	err := p.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		e, err := appendTx(tx, params)
		if err != nil {
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

// appendTx 在已开启的事务内执行追加。锁定账户行 -> 计算新余额 ->
// 更新账户 -> 写入流水，任何一步失败整体回滚。
func appendTx(tx *gorm.DB, params AppendParams) (*models.PointsLog, error) {
	var account models.UserPoint
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", params.UserID).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrUserNotFound
		}
		return nil, err
	}

	entry, err := account.Apply(params.Delta, params.Kind)
	if err != nil {
		return nil, err
	}

	err = tx.Model(&models.UserPoint{}).
		Where("user_id = ?", params.UserID).
		Updates(map[string]any{
			"balance":        account.Balance,
			"total_redeemed": account.TotalRedeemed,
			"total_used":     account.TotalUsed,
		}).Error
	if err != nil {
		return nil, err
	}

	entry.ID = snowflake.GenID()
	entry.Remark = params.Remark
	entry.TaskID = params.TaskID
	entry.CardNo = params.CardNo
	if err := tx.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// GetAccount 查询用户积分账户
func (p *Point) GetAccount(ctx context.Context, userID int64) (*models.UserPoint, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var account models.UserPoint
	err := p.Db.WithContext(ctx).Where("user_id = ?", userID).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrUserNotFound
		}
		return nil, mapStoreErr(err)
	}
	return &account, nil
}

// ListEntries 分页筛选查询流水，返回当前页数据与总条数
func (p *Point) ListEntries(ctx context.Context, f EntryFilter) ([]models.PointsLog, int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := p.Db.WithContext(ctx).Model(&models.PointsLog{})
	if f.UserID > 0 {
		query = query.Where("user_id = ?", f.UserID)
	}
	if f.Kind != "" {
		query = query.Where("kind = ?", f.Kind)
	}
	switch {
	case f.DeltaSign > 0:
		query = query.Where("delta > 0")
	case f.DeltaSign < 0:
		query = query.Where("delta < 0")
	}
	if f.Search != "" {
		query = query.Where("LOWER(remark) LIKE ?", "%"+strings.ToLower(f.Search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, mapStoreErr(err)
	}

	order := "created_at DESC"
	if f.SortOrder == "asc" {
		order = "created_at ASC"
	}

	var logs []models.PointsLog
	err := query.Order(order).Limit(f.Limit).Offset(f.Offset).Find(&logs).Error
	if err != nil {
		return nil, 0, mapStoreErr(err)
	}
	return logs, total, nil
}

// AggregateStats 汇总所有账户的全局统计
func (p *Point) AggregateStats(ctx context.Context) (*AggregateStats, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var stats AggregateStats
	err := p.Db.WithContext(ctx).Model(&models.UserPoint{}).
		Select("COUNT(*) AS total_users, " +
			"IFNULL(SUM(total_redeemed), 0) AS total_redeemed, " +
			"IFNULL(SUM(total_used), 0) AS total_used, " +
			"IFNULL(SUM(CASE WHEN total_used > 0 THEN 1 ELSE 0 END), 0) AS active_users").
		Scan(&stats).Error
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return &stats, nil
}

// TopConsumers 消耗榜：按累计消耗倒序，消耗相同的按最近消耗时间靠前
func (p *Point) TopConsumers(ctx context.Context, limit int) ([]ConsumerRank, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var ranks []ConsumerRank
	err := p.Db.WithContext(ctx).Model(&models.PointsLog{}).
		Select("user_id, SUM(-delta) AS used, MAX(created_at) AS last_used_at").
		Where("delta < 0").
		Group("user_id").
		Order("used DESC, last_used_at DESC").
		Limit(limit).
		Scan(&ranks).Error
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return ranks, nil
}
