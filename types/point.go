package types

// LedgerEntry 一条积分流水的对外形态
type LedgerEntry struct {
	ID            int64   `json:"id"`
	UserID        int64   `json:"user_id"`
	Delta         int64   `json:"delta"`          // 变动数值（正负）
	BalanceBefore int64   `json:"balance_before"` // 变动前余额
	BalanceAfter  int64   `json:"balance_after"`  // 变动后余额快照
	Kind          string  `json:"kind"`
	Remark        string  `json:"remark"`
	TaskID        *int64  `json:"task_id,omitempty"`
	CardNo        *string `json:"card_no,omitempty"`
	CreatedAt     string  `json:"created_at"` // 格式化时间: 2006-01-02 15:04:05
}

// LedgerEntryPage 流水分页包装
type LedgerEntryPage struct {
	Entries []LedgerEntry `json:"entries"`
	Total   int64         `json:"total"`
}

// PointsAccount 账户概览
type PointsAccount struct {
	UserID        int64 `json:"user_id"`
	Balance       int64 `json:"balance"`        // 当前可用积分余额
	TotalRedeemed int64 `json:"total_redeemed"` // 历史累计获得
	TotalUsed     int64 `json:"total_used"`     // 历史累计使用
}

// PointsStatistics 全局统计
type PointsStatistics struct {
	TotalRedeemed int64   `json:"total_redeemed"`
	TotalUsed     int64   `json:"total_used"`
	UsageRate     float64 `json:"usage_rate"` // 百分比，保留两位小数
	TotalUsers    int64   `json:"total_users"`
	ActiveUsers   int64   `json:"active_users"` // 有过消耗的用户数
}

// AppendEntryReq 后台调整 / 通用追加流水请求体
type AppendEntryReq struct {
	UserID int64   `json:"user_id" binding:"required"`
	Delta  int64   `json:"delta" binding:"required"` // 不允许为 0
	Kind   string  `json:"kind"`                     // 缺省为 admin_adjust
	Remark string  `json:"remark" binding:"required"`
	TaskID *int64  `json:"task_id"`
	CardNo *string `json:"card_no"`
}

// ListEntriesReq 流水筛选请求
type ListEntriesReq struct {
	UserID    int64  `form:"user_id"`
	Kind      string `form:"kind"`
	Search    string `form:"search"`
	SortField string `form:"sort_field,default=created_at"`
	SortOrder string `form:"sort_order,default=desc"` // asc / desc
	Limit     int    `form:"limit,default=20"`
	Offset    int    `form:"offset"`
}

// UserHistoryReq 用户流水按方向分页请求
type UserHistoryReq struct {
	Action string `form:"action" binding:"omitempty,oneof=exchange usage"` // exchange-入账 usage-支出
	Limit  int    `form:"limit,default=10"`
	Offset int    `form:"offset"`
}
