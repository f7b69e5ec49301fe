package models

import "time"

// 积分变动类型常量定义
const (
	KindCardRedeem   = "card_redeem"   // 兑换卡兑换
	KindAdminAdjust  = "admin_adjust"  // 后台调整
	KindRefund       = "refund"        // 任务退款返还
	KindFeatureUsage = "feature_usage" // 功能消耗
)

// ValidKind 判断变动类型是否合法
func ValidKind(kind string) bool {
	switch kind {
	case KindCardRedeem, KindAdminAdjust, KindRefund, KindFeatureUsage:
		return true
	}
	return false
}

// UserPoint 用户积分账户，余额是流水累加的投影
type UserPoint struct {
	ID            int64     `gorm:"primaryKey;column:id"`
	UserID        int64     `gorm:"column:user_id;uniqueIndex"`
	Balance       int64     `gorm:"column:balance;default:0"`
	TotalRedeemed int64     `gorm:"column:total_redeemed;default:0"` // 历史累计获得
	TotalUsed     int64     `gorm:"column:total_used;default:0"`     // 历史累计消耗
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (UserPoint) TableName() string {
	return "user_points"
}

// PointsLog 积分流水，只增不改不删
type PointsLog struct {
	ID            int64     `gorm:"primaryKey;column:id"`
	UserID        int64     `gorm:"column:user_id;index:idx_user_id"`
	Delta         int64     `gorm:"column:delta"`          // 变动数额（正负）
	BalanceBefore int64     `gorm:"column:balance_before"` // 变动前余额
	BalanceAfter  int64     `gorm:"column:balance_after"`  // 变动后余额
	Kind          string    `gorm:"column:kind;index:idx_kind;size:32"`
	Remark        string    `gorm:"column:remark;size:255"`
	TaskID        *int64    `gorm:"column:task_id;index:idx_task_id"`
	CardNo        *string   `gorm:"column:card_no;index:idx_card_no;size:64"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (PointsLog) TableName() string {
	return "points_logs"
}

// Apply 在账户上应用一次积分变动，返回对应的流水记录。
// 余额、累计计数与流水必须在同一事务内持久化，调用方需持有账户行锁。
func (a *UserPoint) Apply(delta int64, kind string) (*PointsLog, error) {
	if delta == 0 || !ValidKind(kind) {
		return nil, ErrInvalidArgument
	}
	before := a.Balance
	after := before + delta
	// 功能消耗不允许把余额打成负数
	if kind == KindFeatureUsage && after < 0 {
		return nil, ErrInsufficientBalance
	}
	a.Balance = after
	if delta > 0 {
		a.TotalRedeemed += delta
	} else {
		a.TotalUsed += -delta
	}
	return &PointsLog{
		UserID:        a.UserID,
		Delta:         delta,
		BalanceBefore: before,
		BalanceAfter:  after,
		Kind:          kind,
	}, nil
}
