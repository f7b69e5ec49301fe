package service

import (
	"context"
	"math"
	"strings"

	"Pointly/dao"
	"Pointly/models"
	"Pointly/types"
)

// LedgerStore 积分流水存储。实现方保证追加的原子性与同用户串行化。
type LedgerStore interface {
	Append(ctx context.Context, params dao.AppendParams) (*models.PointsLog, error)
	GetAccount(ctx context.Context, userID int64) (*models.UserPoint, error)
	ListEntries(ctx context.Context, f dao.EntryFilter) ([]models.PointsLog, int64, error)
	AggregateStats(ctx context.Context) (*dao.AggregateStats, error)
	TopConsumers(ctx context.Context, limit int) ([]dao.ConsumerRank, error)
}

type PointService struct {
	Ledger LedgerStore
}

var _ IPointService = (*PointService)(nil)

type IPointService interface {
	AppendEntry(ctx context.Context, req *types.AppendEntryReq) (*types.LedgerEntry, error)
	GetBalance(ctx context.Context, userID int64) (int64, error)
	GetAccount(ctx context.Context, userID int64) (*types.PointsAccount, error)
	GetAggregateStats(ctx context.Context) (*types.PointsStatistics, error)
	ListEntries(ctx context.Context, req *types.ListEntriesReq) (*types.LedgerEntryPage, error)
}

// AppendEntry 追加一条流水。delta 不允许为 0，feature_usage 不允许把
// 余额打负，校验不过不会碰存储。
func (p *PointService) AppendEntry(ctx context.Context, req *types.AppendEntryReq) (*types.LedgerEntry, error) {
	kind := req.Kind
	if kind == "" {
		kind = models.KindAdminAdjust
	}
	if req.Delta == 0 || !models.ValidKind(kind) {
		return nil, asBizError(models.ErrInvalidArgument)
	}

	entry, err := p.Ledger.Append(ctx, dao.AppendParams{
		UserID: req.UserID,
		Delta:  req.Delta,
		Kind:   kind,
		Remark: req.Remark,
		TaskID: req.TaskID,
		CardNo: req.CardNo,
	})
	if err != nil {
		return nil, asBizError(err)
	}
	return toLedgerEntry(entry), nil
}

func (p *PointService) GetBalance(ctx context.Context, userID int64) (int64, error) {
	account, err := p.Ledger.GetAccount(ctx, userID)
	if err != nil {
		return 0, asBizError(err)
	}
	return account.Balance, nil
}

func (p *PointService) GetAccount(ctx context.Context, userID int64) (*types.PointsAccount, error) {
	account, err := p.Ledger.GetAccount(ctx, userID)
	if err != nil {
		return nil, asBizError(err)
	}
	return &types.PointsAccount{
		UserID:        account.UserID,
		Balance:       account.Balance,
		TotalRedeemed: account.TotalRedeemed,
		TotalUsed:     account.TotalUsed,
	}, nil
}

// GetAggregateStats 全局统计，现算现取，不在进程内缓存
func (p *PointService) GetAggregateStats(ctx context.Context) (*types.PointsStatistics, error) {
	stats, err := p.Ledger.AggregateStats(ctx)
	if err != nil {
		return nil, asBizError(err)
	}

	var rate float64
	if stats.TotalRedeemed > 0 {
		rate = math.Round(float64(stats.TotalUsed)/float64(stats.TotalRedeemed)*100*100) / 100
	}
	return &types.PointsStatistics{
		TotalRedeemed: stats.TotalRedeemed,
		TotalUsed:     stats.TotalUsed,
		UsageRate:     rate,
		TotalUsers:    stats.TotalUsers,
		ActiveUsers:   stats.ActiveUsers,
	}, nil
}

func (p *PointService) ListEntries(ctx context.Context, req *types.ListEntriesReq) (*types.LedgerEntryPage, error) {
	if req.SortField != "" && req.SortField != "created_at" {
		return nil, asBizError(models.ErrInvalidArgument)
	}
	sortOrder := strings.ToLower(req.SortOrder)
	if sortOrder != "asc" {
		sortOrder = "desc"
	}
	if req.Kind != "" && !models.ValidKind(req.Kind) {
		return nil, asBizError(models.ErrInvalidArgument)
	}

	logs, total, err := p.Ledger.ListEntries(ctx, dao.EntryFilter{
		UserID:    req.UserID,
		Kind:      req.Kind,
		Search:    req.Search,
		SortField: "created_at",
		SortOrder: sortOrder,
		Limit:     normalizeLimit(req.Limit),
		Offset:    req.Offset,
	})
	if err != nil {
		return nil, asBizError(err)
	}
	return toLedgerEntryPage(logs, total), nil
}
