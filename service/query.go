package service

import (
	"context"

	"Pointly/dao"
	"Pointly/models"
	"Pointly/types"

	"github.com/sourcegraph/conc/pool"
)

// topConsumerLimit 消耗榜固定取前五
const topConsumerLimit = 5

type QueryService struct {
	Ledger LedgerStore
}

var _ IQueryService = (*QueryService)(nil)

type IQueryService interface {
	RecentRedemptions(ctx context.Context, limit int) ([]types.LedgerEntry, error)
	RecentConsumption(ctx context.Context, limit int) ([]types.LedgerEntry, error)
	TopConsumers(ctx context.Context) ([]types.ConsumerRank, error)
	UserHistory(ctx context.Context, userID int64, req *types.UserHistoryReq) (*types.LedgerEntryPage, error)
	Dashboard(ctx context.Context) (*types.DashboardResp, error)
}

// RecentRedemptions 最近的兑换记录，最新的在前
func (q *QueryService) RecentRedemptions(ctx context.Context, limit int) ([]types.LedgerEntry, error) {
	logs, _, err := q.Ledger.ListEntries(ctx, dao.EntryFilter{
		Kind:      models.KindCardRedeem,
		SortOrder: "desc",
		Limit:     normalizeLimit(limit),
	})
	if err != nil {
		return nil, asBizError(err)
	}
	return toLedgerEntryPage(logs, 0).Entries, nil
}

// RecentConsumption 最近的消耗记录，按负向流水下推过滤
func (q *QueryService) RecentConsumption(ctx context.Context, limit int) ([]types.LedgerEntry, error) {
	logs, _, err := q.Ledger.ListEntries(ctx, dao.EntryFilter{
		DeltaSign: -1,
		SortOrder: "desc",
		Limit:     normalizeLimit(limit),
	})
	if err != nil {
		return nil, asBizError(err)
	}
	return toLedgerEntryPage(logs, 0).Entries, nil
}

func (q *QueryService) TopConsumers(ctx context.Context) ([]types.ConsumerRank, error) {
	ranks, err := q.Ledger.TopConsumers(ctx, topConsumerLimit)
	if err != nil {
		return nil, asBizError(err)
	}

	out := make([]types.ConsumerRank, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, types.ConsumerRank{
			UserID:     r.UserID,
			Used:       r.Used,
			LastUsedAt: r.LastUsedAt,
		})
	}
	return out, nil
}

// UserHistory 用户流水按方向拆分分页：exchange 只取入账，usage 只取支出
func (q *QueryService) UserHistory(ctx context.Context, userID int64, req *types.UserHistoryReq) (*types.LedgerEntryPage, error) {
	if userID <= 0 {
		return nil, asBizError(models.ErrInvalidArgument)
	}

	sign := 0
	switch req.Action {
	case "exchange":
		sign = 1
	case "usage":
		sign = -1
	}

	logs, total, err := q.Ledger.ListEntries(ctx, dao.EntryFilter{
		UserID:    userID,
		DeltaSign: sign,
		SortOrder: "desc",
		Limit:     normalizeLimit(req.Limit),
		Offset:    req.Offset,
	})
	if err != nil {
		return nil, asBizError(err)
	}
	return toLedgerEntryPage(logs, total), nil
}

// Dashboard 看板聚合：三类视图并发取数，任何一路失败整体失败，
// 不做降级回退
func (q *QueryService) Dashboard(ctx context.Context) (*types.DashboardResp, error) {
	var resp types.DashboardResp

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		entries, err := q.RecentRedemptions(ctx, 10)
		if err != nil {
			return err
		}
		resp.RecentRedemptions = entries
		return nil
	})
	p.Go(func(ctx context.Context) error {
		entries, err := q.RecentConsumption(ctx, 10)
		if err != nil {
			return err
		}
		resp.RecentConsumption = entries
		return nil
	})
	p.Go(func(ctx context.Context) error {
		ranks, err := q.TopConsumers(ctx)
		if err != nil {
			return err
		}
		resp.TopConsumers = ranks
		return nil
	})

	if err := p.Wait(); err != nil {
		return nil, err
	}
	return &resp, nil
}
