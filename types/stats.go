package types

// ConsumerRank 消耗榜一行
type ConsumerRank struct {
	UserID     int64  `json:"user_id"`
	Used       int64  `json:"used"`         // 累计消耗（绝对值）
	LastUsedAt string `json:"last_used_at"` // 最近一次消耗时间
}

// DashboardResp 管理端看板聚合视图
type DashboardResp struct {
	RecentRedemptions []LedgerEntry  `json:"recent_redemptions"`
	RecentConsumption []LedgerEntry  `json:"recent_consumption"`
	TopConsumers      []ConsumerRank `json:"top_consumers"`
}
